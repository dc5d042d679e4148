// Package policy holds the single authorization decision point for every
// state-changing operation in the marketplace. Admins bypass ownership checks;
// farmers and buyers must own the resource they act on.
package policy

import "github.com/AmanKr31/Farm-Bazzar-sub000/internal/domain/model"

// Action enumerates the operations gated by CanPerform.
type Action int

const (
	CreateOrder Action = iota + 1
	ViewOrder
	UpdateOrderStatus
	UpdatePaymentStatus
	UpdateShippingAddress
	CancelOrder
	SubmitOffer
	RespondToOffer
	ViewNegotiation
	CreateReview
	ReplyToReview
	CreateListing
	ManageListing
)

var actionNames = map[Action]string{
	CreateOrder:           "create_order",
	ViewOrder:             "view_order",
	UpdateOrderStatus:     "update_order_status",
	UpdatePaymentStatus:   "update_payment_status",
	UpdateShippingAddress: "update_shipping_address",
	CancelOrder:           "cancel_order",
	SubmitOffer:           "submit_offer",
	RespondToOffer:        "respond_to_offer",
	ViewNegotiation:       "view_negotiation",
	CreateReview:          "create_review",
	ReplyToReview:         "reply_to_review",
	CreateListing:         "create_listing",
	ManageListing:         "manage_listing",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Actor is the authenticated caller.
type Actor struct {
	ID   int64
	Role model.Role
}

// Resource names the parties attached to the entity being acted on.
// Unused fields stay zero.
type Resource struct {
	BuyerID  int64 // order or negotiation buyer
	FarmerID int64 // order farmer, negotiation/listing farmer
	OwnerID  int64 // listing owner
	TargetID int64 // reviewed farmer
}

// OrderResource describes an order for policy checks.
func OrderResource(o *model.Order) Resource {
	return Resource{BuyerID: o.BuyerID, FarmerID: o.FarmerID}
}

// SessionResource describes a negotiation session for policy checks.
func SessionResource(s *model.NegotiationSession) Resource {
	return Resource{BuyerID: s.BuyerID, FarmerID: s.FarmerID}
}

// CanPerform reports whether actor may perform action on res.
func CanPerform(actor Actor, action Action, res Resource) bool {
	if actor.ID == 0 || !actor.Role.Valid() {
		return false
	}

	admin := actor.Role == model.RoleAdmin
	isBuyer := actor.Role == model.RoleBuyer && res.BuyerID != 0 && actor.ID == res.BuyerID
	isFarmer := actor.Role == model.RoleFarmer && res.FarmerID != 0 && actor.ID == res.FarmerID

	switch action {
	case CreateOrder:
		return actor.Role == model.RoleBuyer
	case ViewOrder, RespondToOffer, ViewNegotiation:
		return admin || isBuyer || isFarmer
	case UpdateOrderStatus:
		return admin || isFarmer
	case UpdatePaymentStatus:
		return admin
	case UpdateShippingAddress, CancelOrder:
		return admin || isBuyer
	case SubmitOffer:
		return isBuyer || isFarmer
	case CreateReview:
		return isBuyer
	case ReplyToReview:
		return admin || (actor.Role == model.RoleFarmer && res.TargetID != 0 && actor.ID == res.TargetID)
	case CreateListing:
		return actor.Role == model.RoleFarmer
	case ManageListing:
		return admin || (actor.Role == model.RoleFarmer && res.OwnerID != 0 && actor.ID == res.OwnerID)
	}
	return false
}
