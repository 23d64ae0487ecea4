package cart

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/kapzar/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is the narrow read-only view of a catalog product the cart needs.
// Anything that can identify itself and expose a price, name and image can
// be added to a cart.
type Product interface {
	ID() string
	Name() string
	Price() valueobject.Money
	ImageURL() string
}

// Line is the stored state for one product in a cart.
// The unit price is kept as a string-encoded decimal so precision survives
// the trip through session storage.
type Line struct {
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// LineView is an enriched, display-ready view of a cart line
type LineView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ImageURL   string            `json:"image_url,omitempty"`
	Price      valueobject.Money `json:"price"`
	Quantity   int               `json:"quantity"`
	TotalPrice valueobject.Money `json:"total_price"`
}

// Cart holds one session's lines keyed by product ID. Lines never carry a
// quantity below 1; setting a quantity to zero or less deletes the line.
//
// Stored entries that fail to decode are retained verbatim so a corrupted
// session never loses data, but they are invisible to Items and Total.
type Cart struct {
	lines   map[string]Line
	corrupt map[string]json.RawMessage
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		lines:   make(map[string]Line),
		corrupt: make(map[string]json.RawMessage),
	}
}

// FromJSON restores a cart from its session-stored representation.
// Malformed top-level data yields an empty cart; individual entries of the
// wrong shape are carried along untouched but skipped everywhere else.
// Display paths must tolerate corrupted session data rather than fail a
// page view.
func FromJSON(data []byte) *Cart {
	c := New()
	if len(data) == 0 {
		return c
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return c
	}

	for id, entry := range raw {
		var line Line
		if err := json.Unmarshal(entry, &line); err != nil {
			c.corrupt[id] = entry
			continue
		}
		c.lines[id] = line
	}
	return c
}

// ToJSON serializes the cart for session storage, corrupted entries included
func (c *Cart) ToJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(c.lines)+len(c.corrupt))
	for id, line := range c.lines {
		data, err := json.Marshal(line)
		if err != nil {
			return nil, err
		}
		out[id] = data
	}
	for id, entry := range c.corrupt {
		if _, ok := out[id]; !ok {
			out[id] = entry
		}
	}
	return json.Marshal(out)
}

// Len returns the number of valid lines
func (c *Cart) Len() int {
	return len(c.lines)
}

// Add puts a product into the cart or adjusts its quantity. A line absent
// from the cart snapshots the product's current price, name and image; the
// snapshot is not refreshed on later adds. When override is true the
// quantity is set to the given value, otherwise it is added to the existing
// quantity. A resulting quantity of zero or less deletes the line.
func (c *Cart) Add(p Product, quantity int, override bool) {
	id := p.ID()

	line, ok := c.lines[id]
	if !ok {
		line = Line{
			Price:    p.Price().Amount().String(),
			Name:     p.Name(),
			ImageURL: p.ImageURL(),
		}
		delete(c.corrupt, id)
	}

	if override {
		line.Quantity = quantity
	} else {
		line.Quantity += quantity
	}

	if line.Quantity <= 0 {
		delete(c.lines, id)
		return
	}
	c.lines[id] = line
}

// Update sets the quantity for a product already in the cart.
// A quantity of zero or less removes the line. Unknown products are ignored.
func (c *Cart) Update(productID string, quantity int) {
	line, ok := c.lines[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(c.lines, productID)
		return
	}
	line.Quantity = quantity
	c.lines[productID] = line
}

// Remove deletes a product's line if present
func (c *Cart) Remove(productID string) {
	delete(c.lines, productID)
}

// Clear empties the cart, dropping corrupted entries too
func (c *Cart) Clear() {
	c.lines = make(map[string]Line)
	c.corrupt = make(map[string]json.RawMessage)
}

// Items returns enriched views of all valid lines, ordered by product ID
// for stable output. Prices that fail to parse render as zero instead of
// failing the view.
func (c *Cart) Items() []LineView {
	ids := make([]string, 0, len(c.lines))
	for id := range c.lines {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	views := make([]LineView, 0, len(ids))
	for _, id := range ids {
		line := c.lines[id]
		price := parsePrice(line.Price)
		views = append(views, LineView{
			ID:         id,
			Name:       line.Name,
			ImageURL:   line.ImageURL,
			Price:      price,
			Quantity:   line.Quantity,
			TotalPrice: price.MultiplyByInt(int64(line.Quantity)),
		})
	}
	return views
}

// Total returns the exact-decimal sum of price times quantity over all
// valid lines
func (c *Cart) Total() valueobject.Money {
	total := valueobject.Zero()
	for _, line := range c.lines {
		price := parsePrice(line.Price)
		total = total.Add(price.MultiplyByInt(int64(line.Quantity)))
	}
	return total
}

// Merge folds another cart's lines into this one without mutating the
// other cart. Lines with a non-positive quantity are skipped; quantities of
// shared products add up; lines new to this cart copy the other cart's
// price, name and image snapshot. Used to fold an anonymous session cart
// into a user's saved cart at login.
func (c *Cart) Merge(other *Cart) {
	if other == nil {
		return
	}
	for id, line := range other.lines {
		if line.Quantity <= 0 {
			continue
		}
		existing, ok := c.lines[id]
		if ok {
			existing.Quantity += line.Quantity
			c.lines[id] = existing
			continue
		}
		c.lines[id] = Line{
			Quantity: line.Quantity,
			Price:    line.Price,
			Name:     line.Name,
			ImageURL: line.ImageURL,
		}
	}
}

// CoerceQuantity converts loosely-typed quantity input (JSON number, numeric
// string) to an integer. The ok result reports whether the value was usable.
func CoerceQuantity(value any) (int, bool) {
	switch v := value.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		// JSON numbers arrive as float64; reject fractional values
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parsePrice(s string) valueobject.Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return valueobject.Zero()
	}
	return valueobject.NewMoney(d)
}
