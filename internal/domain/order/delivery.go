package order

import "github.com/kapzar/backend/internal/domain/shared/valueobject"

// Default delivery policy values. A subtotal at or above the threshold
// ships free, anything below pays the flat charge.
const (
	DefaultFreeDeliveryThreshold = "500.00"
	DefaultDeliveryCharge        = "40.00"
)

// DeliveryPolicy computes the delivery charge for an order subtotal
type DeliveryPolicy struct {
	FreeThreshold valueobject.Money
	Charge        valueobject.Money
}

// DefaultDeliveryPolicy returns the standard flat-fee policy
func DefaultDeliveryPolicy() DeliveryPolicy {
	threshold, _ := valueobject.NewMoneyFromString(DefaultFreeDeliveryThreshold)
	charge, _ := valueobject.NewMoneyFromString(DefaultDeliveryCharge)
	return DeliveryPolicy{FreeThreshold: threshold, Charge: charge}
}

// ChargeFor returns the delivery charge for the given subtotal
func (p DeliveryPolicy) ChargeFor(subtotal valueobject.Money) valueobject.Money {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold) {
		return valueobject.Zero()
	}
	return p.Charge
}
