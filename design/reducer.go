package design

import (
	"sort"

	"github.com/junaidrashid-git/charm-studio-api/layout"
	"github.com/junaidrashid-git/charm-studio-api/models"
)

// Action is a state transition understood by Reduce.
type Action interface {
	actionName() string
}

type SetBracelet struct {
	Bracelet *models.Bracelet
}

// AddCharm appends a new instance. InstanceID must be set; Store.Dispatch
// fills it in.
type AddCharm struct {
	InstanceID string
	Charm      models.Charm
}

type RemoveCharm struct {
	InstanceID string
}

// ReorderCharms replaces the whole ordered list. It is not checked to be a
// permutation of the current one.
type ReorderCharms struct {
	Charms []CharmInstance
}

type AddToCart struct {
	LineID       string
	PreviewImage string
}

type RemoveFromCart struct {
	LineID string
}

// EditCartItem moves a cart line back into the live selection.
type EditCartItem struct {
	LineID string
}

type ClearSelection struct{}

func (SetBracelet) actionName() string    { return "set_bracelet" }
func (AddCharm) actionName() string       { return "add_charm" }
func (RemoveCharm) actionName() string    { return "remove_charm" }
func (ReorderCharms) actionName() string  { return "reorder_charms" }
func (AddToCart) actionName() string      { return "add_to_cart" }
func (RemoveFromCart) actionName() string { return "remove_from_cart" }
func (EditCartItem) actionName() string   { return "edit_cart_item" }
func (ClearSelection) actionName() string { return "clear_selection" }

// ActionName is the stable name of a, used in logs and metrics.
func ActionName(a Action) string { return a.actionName() }

// Reduce returns the state after a. s is never modified.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetBracelet:
		if a.Bracelet == nil {
			s.Bracelet = nil
			return s
		}
		b := *a.Bracelet
		s.Bracelet = &b
		return s

	case AddCharm:
		if !s.CanAddCharm() || a.InstanceID == "" {
			return s
		}
		charms := make([]CharmInstance, 0, len(s.Charms)+1)
		charms = append(charms, s.Charms...)
		s.Charms = append(charms, CharmInstance{InstanceID: a.InstanceID, Charm: a.Charm.Clone()})
		return s

	case RemoveCharm:
		s.Charms = filterCharms(s.Charms, a.InstanceID)
		return s

	case ReorderCharms:
		s.Charms = cloneCharms(a.Charms)
		return s

	case AddToCart:
		line, ok := SnapshotForCart(s, a.LineID, a.PreviewImage)
		if !ok {
			return s
		}
		cart := make([]CartLineItem, 0, len(s.Cart)+1)
		cart = append(cart, s.Cart...)
		s.Cart = append(cart, line)
		s.Charms = []CharmInstance{}
		return s

	case RemoveFromCart:
		s.Cart = filterLines(s.Cart, a.LineID)
		return s

	case EditCartItem:
		for _, l := range s.Cart {
			if l.ID != a.LineID {
				continue
			}
			restored := cloneLine(l)
			b := restored.Bracelet
			s.Bracelet = &b
			s.Charms = orderBySlot(restored.Charms, restored.CharmPositions)
			s.Cart = filterLines(s.Cart, a.LineID)
			return s
		}
		return s

	case ClearSelection:
		s.Charms = []CharmInstance{}
		return s
	}
	return s
}

// SnapshotForCart freezes the current design into a cart line. It reports
// false when no bracelet is selected.
func SnapshotForCart(s State, lineID, previewImage string) (CartLineItem, bool) {
	if s.Bracelet == nil || lineID == "" {
		return CartLineItem{}, false
	}
	charms := cloneCharms(s.Charms)
	if charms == nil {
		charms = []CharmInstance{}
	}
	return CartLineItem{
		ID:             lineID,
		Bracelet:       *s.Bracelet,
		Charms:         charms,
		CharmPositions: layout.SlotMap(instanceIDs(charms)),
		PreviewImage:   previewImage,
	}, true
}

func filterCharms(charms []CharmInstance, instanceID string) []CharmInstance {
	out := make([]CharmInstance, 0, len(charms))
	for _, c := range charms {
		if c.InstanceID != instanceID {
			out = append(out, c)
		}
	}
	return out
}

func filterLines(lines []CartLineItem, id string) []CartLineItem {
	out := make([]CartLineItem, 0, len(lines))
	for _, l := range lines {
		if l.ID != id {
			out = append(out, l)
		}
	}
	return out
}

// orderBySlot sorts charms by their stored slot. Instances without a slot
// keep their relative order after the placed ones.
func orderBySlot(charms []CharmInstance, slots map[string]int) []CharmInstance {
	sort.SliceStable(charms, func(i, j int) bool {
		si, iok := slots[charms[i].InstanceID]
		sj, jok := slots[charms[j].InstanceID]
		switch {
		case iok && jok:
			return si < sj
		case iok:
			return true
		default:
			return false
		}
	})
	return charms
}
