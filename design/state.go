// Package design holds the bracelet composition state: the selected
// bracelet, the ordered charm instances on it, and the cart of finished
// designs. All mutations go through Reduce.
package design

import (
	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// MaxCharms is the hard cap on charms in one design.
const MaxCharms = 7

// CharmInstance is one placed occurrence of a charm. The same charm may
// appear several times, each with its own InstanceID.
type CharmInstance struct {
	InstanceID string       `json:"instance_id"`
	Charm      models.Charm `json:"charm"`
}

// CartLineItem is an immutable snapshot of one composed bracelet.
type CartLineItem struct {
	ID             string          `json:"id"`
	Bracelet       models.Bracelet `json:"bracelet"`
	Charms         []CharmInstance `json:"charms"`
	CharmPositions map[string]int  `json:"charm_positions"`
	PreviewImage   string          `json:"preview_image,omitempty"`
}

// State is the whole composition model of one session.
type State struct {
	Bracelet *models.Bracelet `json:"bracelet"`
	Charms   []CharmInstance  `json:"charms"`
	Cart     []CartLineItem   `json:"cart"`
}

// CanAddCharm reports whether another charm fits. Callers check this to
// surface the limit; AddCharm itself ignores overflow silently.
func (s State) CanAddCharm() bool { return len(s.Charms) < MaxCharms }

// InstanceIDs lists the charm instance ids in order.
func (s State) InstanceIDs() []string {
	return instanceIDs(s.Charms)
}

// Placements positions the current charms on a width×height canvas.
func (s State) Placements(width, height float64) []layout.Placement {
	return layout.Assign(s.InstanceIDs(), width, height)
}

// TotalPrice is the bracelet price plus every charm, recomputed on each call.
func TotalPrice(s State) float64 {
	return designPrice(s.Bracelet, s.Charms)
}

// CartTotal sums every line in the cart.
func CartTotal(s State) float64 {
	var total float64
	for _, l := range s.Cart {
		total += l.Total()
	}
	return total
}

// Total is the price of the line.
func (l CartLineItem) Total() float64 {
	return designPrice(&l.Bracelet, l.Charms)
}

func designPrice(b *models.Bracelet, charms []CharmInstance) float64 {
	var total float64
	if b != nil {
		total += b.Price
	}
	for _, c := range charms {
		total += c.Charm.Price
	}
	return total
}

func instanceIDs(charms []CharmInstance) []string {
	ids := make([]string, len(charms))
	for i, c := range charms {
		ids[i] = c.InstanceID
	}
	return ids
}

func cloneCharms(charms []CharmInstance) []CharmInstance {
	if charms == nil {
		return nil
	}
	out := make([]CharmInstance, len(charms))
	for i, c := range charms {
		out[i] = CharmInstance{InstanceID: c.InstanceID, Charm: c.Charm.Clone()}
	}
	return out
}

// clone returns a copy of s that shares no slices or maps with it.
func (s State) clone() State {
	out := State{Charms: cloneCharms(s.Charms)}
	if s.Bracelet != nil {
		b := *s.Bracelet
		out.Bracelet = &b
	}
	if s.Cart != nil {
		out.Cart = make([]CartLineItem, len(s.Cart))
		for i, l := range s.Cart {
			out.Cart[i] = cloneLine(l)
		}
	}
	return out
}

func cloneLine(l CartLineItem) CartLineItem {
	out := l
	out.Charms = cloneCharms(l.Charms)
	out.CharmPositions = make(map[string]int, len(l.CharmPositions))
	for k, v := range l.CharmPositions {
		out.CharmPositions[k] = v
	}
	return out
}
