package user

type User struct {
	Id       int
	Uid      string
	Name     string
	Email    string
	Company  string
	Phone    string
	PhotoUrl string
	Plan     Plan
}

// Plan carries the billing metadata attached to a user by the payment
// provider. The values are opaque to this service and only echoed back to
// the frontend for plan gating.
type Plan struct {
	Name          string
	PaymentStatus string
}
