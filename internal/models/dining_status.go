package models

type DiningStatus string

const (
	StatusPending    DiningStatus = "pending"
	StatusConfirmed  DiningStatus = "confirmed"
	StatusArrived    DiningStatus = "arrived"
	StatusSeated     DiningStatus = "seated"
	StatusOrdered    DiningStatus = "ordered"
	StatusAppetizers DiningStatus = "appetizers"
	StatusMainCourse DiningStatus = "main_course"
	StatusDessert    DiningStatus = "dessert"
	StatusPayment    DiningStatus = "payment"
	StatusCompleted  DiningStatus = "completed"

	StatusNoShow                DiningStatus = "no_show"
	StatusCancelledByUser       DiningStatus = "cancelled_by_user"
	StatusCancelledByRestaurant DiningStatus = "cancelled_by_restaurant"
)

// IsTerminal reports whether no further transition is accepted from s.
func (s DiningStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusNoShow, StatusCancelledByUser, StatusCancelledByRestaurant:
		return true
	default:
		return false
	}
}

// IsPhysicallyPresent reports whether a booking in status s holds its table
// regardless of the scheduled time window.
func (s DiningStatus) IsPhysicallyPresent() bool {
	switch s {
	case StatusArrived, StatusSeated, StatusOrdered, StatusAppetizers,
		StatusMainCourse, StatusDessert, StatusPayment:
		return true
	default:
		return false
	}
}

func (s DiningStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusArrived, StatusSeated,
		StatusOrdered, StatusAppetizers, StatusMainCourse, StatusDessert,
		StatusPayment, StatusCompleted, StatusNoShow,
		StatusCancelledByUser, StatusCancelledByRestaurant:
		return true
	default:
		return false
	}
}
