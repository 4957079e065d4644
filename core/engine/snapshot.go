package engine

import (
	"regexp"
	"strings"
	"time"
)

// WiringKind identifies one of the five fixed electrical-harness
// configurations instantiated for every vehicle.
type WiringKind string

const (
	WiringNone        WiringKind = "none"
	Wiring7Pin        WiringKind = "7-pin"
	Wiring13Pin       WiringKind = "13-pin"
	Wiring7PinModule  WiringKind = "7-pin-module"
	Wiring13PinModule WiringKind = "13-pin-module"
)

// WiringKinds returns the five wiring kinds in their fixed display order.
// Every vehicle gets exactly this set of variants when created.
func WiringKinds() []WiringKind {
	return []WiringKind{WiringNone, Wiring7Pin, Wiring13Pin, Wiring7PinModule, Wiring13PinModule}
}

// Account identifies one of the marketplace accounts listings are sold under.
type Account string

const (
	AccountMain    Account = "main-store"
	AccountPartner Account = "partner-store"
	AccountOutlet  Account = "outlet-store"
)

// Accounts returns the closed set of marketplace accounts in fixed order.
func Accounts() []Account {
	return []Account{AccountMain, AccountPartner, AccountOutlet}
}

// ValidAccount reports whether the given account is part of the closed set.
func ValidAccount(a Account) bool {
	switch a {
	case AccountMain, AccountPartner, AccountOutlet:
		return true
	default:
		return false
	}
}

// Model is a catalog entry identified by a code like "C/029", representing
// one hook product. It owns its vehicles exclusively.
type Model struct {
	ID       string    `json:"id"`
	Code     string    `json:"code"`
	Notes    string    `json:"notes"`
	Vehicles []Vehicle `json:"vehicles"`
}

// Vehicle is a specific car/van fitment under a model.
type Vehicle struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	Variants []Variant `json:"variants"`
}

// Variant is one wiring configuration of a vehicle. Inactive variants are
// excluded from every validation and count.
type Variant struct {
	ID           string             `json:"id"`
	Wiring       WiringKind         `json:"wiring"`
	Code         string             `json:"code"`
	Price        string             `json:"price"`
	ListingIDs   map[Account]string `json:"listing_ids"`
	DuplicateRef string             `json:"duplicate_ref,omitempty"`
	Active       bool               `json:"active"`
}

// BankEntry is a (model code, product code) pair in the manufacturer code
// bank. Uniqueness across models is not enforced here; the engine detects
// violations instead of preventing them.
type BankEntry struct {
	Model string `json:"model"`
	Code  string `json:"code"`
}

// Listing is one externally hosted marketplace listing.
type Listing struct {
	ID             string    `json:"id"`
	Account        Account   `json:"account"`
	ExternalID     string    `json:"external_id"`
	Title          string    `json:"title"`
	ExternalModel  string    `json:"external_model"`
	ExternalWiring string    `json:"external_wiring"`
	Price          float64   `json:"price"`
	Qty            int       `json:"qty"`
	Status         string    `json:"status"`
	Link           string    `json:"link"`
	SyncedAt       time.Time `json:"synced_at"`
}

// DuplicateListing is a manually tracked second listing for a variant that
// already has a primary mapped listing.
type DuplicateListing struct {
	ID         string  `json:"id"`
	VariantID  string  `json:"variant_id"`
	Account    Account `json:"account"`
	ExternalID string  `json:"external_id"`
	Code       string  `json:"code"`
	Notes      string  `json:"notes"`
}

// Snapshot is the full in-memory state the engine derives from. It is
// treated as immutable: consumers build a fresh snapshot (or copy) for every
// change and hand it to New.
type Snapshot struct {
	Models     []Model            `json:"models"`
	Bank       []BankEntry        `json:"bank"`
	Duplicates []DuplicateListing `json:"duplicates"`
}

// Clone returns a deep copy of the snapshot. Mutators edit the copy and
// publish it, so a snapshot already handed to a reader never changes.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Models:     make([]Model, len(s.Models)),
		Bank:       append([]BankEntry(nil), s.Bank...),
		Duplicates: append([]DuplicateListing(nil), s.Duplicates...),
	}
	for i, m := range s.Models {
		m.Vehicles = append([]Vehicle(nil), m.Vehicles...)
		for j, v := range m.Vehicles {
			v.Variants = append([]Variant(nil), v.Variants...)
			for k, w := range v.Variants {
				if w.ListingIDs != nil {
					ids := make(map[Account]string, len(w.ListingIDs))
					for a, id := range w.ListingIDs {
						ids[a] = id
					}
					w.ListingIDs = ids
				}
				v.Variants[k] = w
			}
			m.Vehicles[j] = v
		}
		out.Models[i] = m
	}
	return out
}

// FindVariant locates a variant by ID in the snapshot tree. It returns the
// variant along with its owning model and vehicle, or found=false.
func (s *Snapshot) FindVariant(variantID string) (m *Model, v *Vehicle, w *Variant, found bool) {
	for mi := range s.Models {
		for vi := range s.Models[mi].Vehicles {
			for wi := range s.Models[mi].Vehicles[vi].Variants {
				if s.Models[mi].Vehicles[vi].Variants[wi].ID == variantID {
					return &s.Models[mi], &s.Models[mi].Vehicles[vi], &s.Models[mi].Vehicles[vi].Variants[wi], true
				}
			}
		}
	}
	return nil, nil, nil, false
}

var (
	shortModelCode = regexp.MustCompile(`^[A-Z]\d{2,3}$`)
	productCode    = regexp.MustCompile(`^\d{8,14}$`)
)

// FormatModelCode canonicalizes a model code: one letter followed by 2-3
// digits (e.g. "C050") is rewritten to "C/050". Any other shape passes
// through unchanged apart from trimming and upper-casing. Callers must apply
// this before using a code as a key.
func FormatModelCode(v string) string {
	s := strings.ToUpper(strings.TrimSpace(v))
	if shortModelCode.MatchString(s) {
		s = s[:1] + "/" + s[1:]
	}
	return s
}

// ValidProductCode reports whether s is a well-formed manufacturer product
// code (8-14 digits).
func ValidProductCode(s string) bool {
	return productCode.MatchString(s)
}
