package cart

import (
	"github.com/shopspring/decimal"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

// Action is one of the closed set of cart transitions.
type Action interface {
	isAction()
}

// AddItem appends Line, or increases the quantity of an existing line with the same id.
type AddItem struct {
	Line domain.CartLine
}

type RemoveItem struct {
	ID string
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes the line.
type UpdateQuantity struct {
	ID       string
	Quantity int
}

type ClearCart struct{}

type SetCartOpen struct {
	Open bool
}

// ApplyCoupon records an absolute discount that the caller computed from the coupon code.
type ApplyCoupon struct {
	Code     string
	Discount decimal.Decimal
}

type RemoveCoupon struct{}

// LoadCart replaces every line, e.g. when hydrating from storage.
type LoadCart struct {
	Items []domain.CartLine
}

func (AddItem) isAction()        {}
func (RemoveItem) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (SetCartOpen) isAction()    {}
func (ApplyCoupon) isAction()    {}
func (RemoveCoupon) isAction()   {}
func (LoadCart) isAction()       {}
