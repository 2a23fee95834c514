// Package session persists the live selection between requests in a
// cookie. Only ids are stored; they are joined back to the catalog on read.
package session

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/junaidrashid-git/charm-studio-api/catalog"
	"github.com/junaidrashid-git/charm-studio-api/design"
)

const (
	CookieName = "design"
	// MaxCookieBytes is the typical per-cookie browser limit.
	MaxCookieBytes = 4096
)

var ErrTooLarge = errors.New("selection does not fit in a cookie")

type selection struct {
	BraceletID uint            `json:"b,omitempty"`
	Charms     []selectedCharm `json:"c,omitempty"`
}

type selectedCharm struct {
	InstanceID string `json:"i"`
	CharmID    uint   `json:"c"`
}

// Encode serializes the bracelet and ordered charm instances of s.
func Encode(s design.State) (string, error) {
	sel := selection{}
	if s.Bracelet != nil {
		sel.BraceletID = s.Bracelet.ID
	}
	for _, c := range s.Charms {
		sel.Charms = append(sel.Charms, selectedCharm{InstanceID: c.InstanceID, CharmID: c.Charm.ID})
	}
	raw, err := json.Marshal(sel)
	if err != nil {
		return "", err
	}
	out := base64.RawURLEncoding.EncodeToString(raw)
	if len(CookieName)+1+len(out) > MaxCookieBytes {
		return "", ErrTooLarge
	}
	return out, nil
}

// Decode restores the selection part of a State. Ids the catalog no longer
// knows are dropped, as are repeated instance ids and instances past the
// charm cap. An empty value decodes to an empty selection.
func Decode(value string, lookup catalog.Lookup) (design.State, error) {
	st := design.State{Charms: []design.CharmInstance{}}
	if value == "" {
		return st, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return st, fmt.Errorf("decode selection: %w", err)
	}
	var sel selection
	if err := json.Unmarshal(raw, &sel); err != nil {
		return st, fmt.Errorf("decode selection: %w", err)
	}
	if sel.BraceletID != 0 {
		if b, ok := lookup.Bracelet(sel.BraceletID); ok {
			st.Bracelet = &b
		}
	}
	seen := make(map[string]struct{}, len(sel.Charms))
	for _, sc := range sel.Charms {
		if len(st.Charms) >= design.MaxCharms {
			break
		}
		if _, dup := seen[sc.InstanceID]; dup || sc.InstanceID == "" {
			continue
		}
		seen[sc.InstanceID] = struct{}{}
		c, ok := lookup.Charm(sc.CharmID)
		if !ok {
			continue
		}
		st.Charms = append(st.Charms, design.CharmInstance{InstanceID: sc.InstanceID, Charm: c})
	}
	return st, nil
}
