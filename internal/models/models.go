// Package models defines the persisted QuickJobs records and the view
// projections the controller hands to the terminal.
package models

// Account is a registered user. Password holds an encoded argon2id hash.
type Account struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the public projection of the signed-in account plus its
// signed token.
type Session struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Listing is a posted job. Seed listings carry no PosterEmail, so nobody
// owns them.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Price       *float64 `json:"price"`
	Location    string   `json:"location"`
	PosterName  string   `json:"posterName"`
	PosterEmail string   `json:"posterEmail,omitempty"`
	CreatedAt   int64    `json:"createdAt"`
}

// PriceValue returns the price, treating a missing one as zero.
func (l Listing) PriceValue() float64 {
	if l.Price == nil {
		return 0
	}
	return *l.Price
}

// Application is a message sent by a signed-in user about a listing.
type Application struct {
	ID             string `json:"id"`
	ListingID      string `json:"listingId"`
	Message        string `json:"message"`
	Contact        string `json:"contact,omitempty"`
	ApplicantName  string `json:"applicantName"`
	ApplicantEmail string `json:"applicantEmail"`
	CreatedAt      int64  `json:"createdAt"`
}

// Draft is the raw post form. PriceText is parsed by the job service.
type Draft struct {
	Title       string
	Category    string
	Description string
	PriceText   string
	Location    string
}

// ViewRow is one rendered line of the listings view.
type ViewRow struct {
	ID         string
	Title      string
	Category   string
	Location   string
	PriceLabel string
	PosterName string
	Age        string
	CanDelete  bool
}

// DetailView is the projection shown when a listing is opened.
type DetailView struct {
	ListingID   string
	Title       string
	Meta        string
	Description string
}

// Categories offered by the post form and the category filter.
var Categories = []string{
	"Yard & Garden",
	"Plumbing",
	"Waste & Removal",
	"Cleaning",
	"Handyman",
	"Moving",
	"Other",
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }
