package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// MinLineQuantity is the floor a cart line quantity is clamped to. Deleting a
// line takes an explicit RemoveItem.
const MinLineQuantity = 1

// MaxLineQuantity bounds a single line. Changes past it are rejected.
const MaxLineQuantity = 999

type CartLine struct {
	ProductID string    `json:"productId"`
	Size      string    `json:"size,omitempty"`
	Product   Product   `json:"product"`
	Quantity  int       `json:"quantity"`
	Selected  bool      `json:"selected"`
	AddedAt   time.Time `json:"addedAt"`
}

// Cart is stored under the cartItems key as a bare JSON array of lines.
// Lines are identified by product id and size.
type Cart struct {
	Lines []CartLine
}

func NewCart() *Cart {
	return &Cart{Lines: make([]CartLine, 0)}
}

func (c Cart) MarshalJSON() ([]byte, error) {
	if c.Lines == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Lines)
}

func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	c.Lines = lines
	return nil
}

func (c *Cart) GetLine(productID, size string) (*CartLine, int) {
	for i, line := range c.Lines {
		if line.ProductID == productID && line.Size == size {
			return &c.Lines[i], i
		}
	}
	return nil, -1
}

// AddItem increments the matching line or appends a new selected line with
// quantity 1.
func (c *Cart) AddItem(product Product, size string, now time.Time) (CartLine, error) {
	if err := product.Validate(); err != nil {
		return CartLine{}, err
	}

	if line, _ := c.GetLine(product.ID, size); line != nil {
		if line.Quantity >= MaxLineQuantity {
			return CartLine{}, NewValidationError("quantity", fmt.Sprintf("at most %d of an item per line", MaxLineQuantity))
		}
		line.Quantity++
		return *line, nil
	}

	line := CartLine{
		ProductID: product.ID,
		Size:      size,
		Product:   product,
		Quantity:  1,
		Selected:  true,
		AddedAt:   now.UTC(),
	}
	c.Lines = append(c.Lines, line)
	return line, nil
}

func (c *Cart) UpdateQuantity(productID, size string, delta int) (CartLine, error) {
	line, _ := c.GetLine(productID, size)
	if line == nil {
		return CartLine{}, fmt.Errorf("cart line %s: %w", lineLabel(productID, size), ErrNotFound)
	}

	if delta > MaxLineQuantity-line.Quantity {
		return CartLine{}, NewValidationError("quantity", fmt.Sprintf("at most %d of an item per line", MaxLineQuantity))
	}
	q := line.Quantity + delta
	if q < MinLineQuantity {
		q = MinLineQuantity
	}
	line.Quantity = q
	return *line, nil
}

func (c *Cart) RemoveItem(productID, size string) error {
	_, index := c.GetLine(productID, size)
	if index == -1 {
		return fmt.Errorf("cart line %s: %w", lineLabel(productID, size), ErrNotFound)
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

func (c *Cart) ToggleSelection(productID, size string) (CartLine, error) {
	line, _ := c.GetLine(productID, size)
	if line == nil {
		return CartLine{}, fmt.Errorf("cart line %s: %w", lineLabel(productID, size), ErrNotFound)
	}
	line.Selected = !line.Selected
	return *line, nil
}

func (c Cart) Selected() []CartLine {
	selected := make([]CartLine, 0, len(c.Lines))
	for _, line := range c.Lines {
		if line.Selected {
			selected = append(selected, line)
		}
	}
	return selected
}

// RemoveSelected drops every selected line and returns them.
func (c *Cart) RemoveSelected() []CartLine {
	kept := make([]CartLine, 0, len(c.Lines))
	removed := make([]CartLine, 0)
	for _, line := range c.Lines {
		if line.Selected {
			removed = append(removed, line)
			continue
		}
		kept = append(kept, line)
	}
	c.Lines = kept
	return removed
}

func (c *Cart) Clear() {
	c.Lines = make([]CartLine, 0)
}

func (c Cart) ItemCount() int {
	n := 0
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

func lineLabel(productID, size string) string {
	if size == "" {
		return productID
	}
	return productID + "/" + size
}
