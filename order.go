package match

// Order is a resting or in-flight order. next and prev are intrusive
// pointers used exclusively by the ladder's FIFO queue at Price; callers
// must never read or set them directly.
type Order struct {
	orderID            OrderID
	side               Side
	orderType          OrderType
	price              Price
	initialQuantity    Quantity
	remainingQuantity  Quantity

	next, prev *Order
}

// NewOrder constructs a limit order (GoodTillCancel, GoodForDay,
// FillAndKill or FillOrKill).
func NewOrder(orderType OrderType, orderID OrderID, side Side, price Price, quantity Quantity) *Order {
	return &Order{
		orderID:           orderID,
		side:              side,
		orderType:         orderType,
		price:             price,
		initialQuantity:   quantity,
		remainingQuantity: quantity,
	}
}

// NewMarketOrder constructs a Market order. Its price is InvalidPrice
// until AddOrder re-pegs it.
func NewMarketOrder(orderID OrderID, side Side, quantity Quantity) *Order {
	return NewOrder(Market, orderID, side, InvalidPrice, quantity)
}

func (o *Order) OrderID() OrderID                { return o.orderID }
func (o *Order) Side() Side                      { return o.side }
func (o *Order) OrderType() OrderType            { return o.orderType }
func (o *Order) Price() Price                    { return o.price }
func (o *Order) InitialQuantity() Quantity       { return o.initialQuantity }
func (o *Order) RemainingQuantity() Quantity     { return o.remainingQuantity }
func (o *Order) FilledQuantity() Quantity        { return o.initialQuantity - o.remainingQuantity }
func (o *Order) IsFilled() bool                  { return o.remainingQuantity == 0 }

// Fill reduces the remaining quantity by quantity. Filling more than the
// order has remaining is an engine bug.
func (o *Order) Fill(quantity Quantity) {
	if quantity > o.remainingQuantity {
		panic(ErrOverfill)
	}
	o.remainingQuantity -= quantity
}

// ToGoodTillCancel re-pegs a Market order to price and converts it to
// GoodTillCancel. Calling it on any other order type is an engine bug.
func (o *Order) ToGoodTillCancel(price Price) {
	if o.orderType != Market {
		panic(ErrInvalidRepeg)
	}
	o.price = price
	o.orderType = GoodTillCancel
}

// OrderModify is a request to replace a live order's price and quantity,
// inheriting its original type.
type OrderModify struct {
	orderID  OrderID
	side     Side
	price    Price
	quantity Quantity
}

// NewOrderModify constructs an OrderModify request.
func NewOrderModify(orderID OrderID, side Side, price Price, quantity Quantity) OrderModify {
	return OrderModify{orderID: orderID, side: side, price: price, quantity: quantity}
}

func (m OrderModify) OrderID() OrderID   { return m.orderID }
func (m OrderModify) Side() Side         { return m.side }
func (m OrderModify) Price() Price       { return m.price }
func (m OrderModify) Quantity() Quantity { return m.quantity }

// ToOrderPointer builds a fresh Order from the modify request, inheriting
// orderType from the order being replaced.
func (m OrderModify) ToOrderPointer(orderType OrderType) *Order {
	return NewOrder(orderType, m.orderID, m.side, m.price, m.quantity)
}
