package domain

// Well-known category values of the reference dataset. The cleaning pipeline
// never validates against these; they seed the default catalog and the tests.
const (
	PaymentCash          = "Cash"
	PaymentCreditCard    = "Credit Card"
	PaymentDigitalWallet = "Digital Wallet"

	LocationInStore  = "In-store"
	LocationTakeaway = "Takeaway"
)

// Catalog lists the closed categorical sets of the transaction table.
// The report uses it to split known/unknown items and to compute the
// treat-purchase ratio; the cleaning pipeline does not consult it.
type Catalog struct {
	Items          []string `yaml:"items" json:"items" validate:"required,min=1"`
	TreatItems     []string `yaml:"treat_items" json:"treat_items"`
	PaymentMethods []string `yaml:"payment_methods" json:"payment_methods"`
	Locations      []string `yaml:"locations" json:"locations"`
}

// DefaultCatalog returns the catalog of the reference dataset.
func DefaultCatalog() Catalog {
	return Catalog{
		Items: []string{
			"Cake",
			"Coffee",
			"Cookie",
			"Juice",
			"Salad",
			"Sandwich",
			"Smoothie",
			"Tea",
		},
		TreatItems: []string{
			"Cake",
			"Cookie",
		},
		PaymentMethods: []string{
			PaymentCash,
			PaymentCreditCard,
			PaymentDigitalWallet,
		},
		Locations: []string{
			LocationInStore,
			LocationTakeaway,
		},
	}
}

// IsKnownItem reports whether name is one of the catalog items.
// The literal UnknownItem label is not a catalog item.
func (c Catalog) IsKnownItem(name string) bool {
	return contains(c.Items, name)
}

// IsTreat reports whether name belongs to the treat-item subset.
func (c Catalog) IsTreat(name string) bool {
	return contains(c.TreatItems, name)
}

// IsKnownPayment reports whether name is a known payment method.
func (c Catalog) IsKnownPayment(name string) bool {
	return contains(c.PaymentMethods, name)
}

// IsKnownLocation reports whether name is a known location.
func (c Catalog) IsKnownLocation(name string) bool {
	return contains(c.Locations, name)
}

func contains(set []string, name string) bool {
	for _, s := range set {
		if s == name {
			return true
		}
	}
	return false
}
