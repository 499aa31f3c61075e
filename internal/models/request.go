package models

// SearchParams describes one aggregated fare search. Origin and destination
// are 3-letter IATA codes, dates are YYYY-MM-DD.
type SearchParams struct {
	Origin        string `json:"origin" query:"origin"`
	Destination   string `json:"destination" query:"destination"`
	DepartureDate string `json:"departureDate" query:"departureDate"`
	ReturnDate    string `json:"returnDate" query:"returnDate"`
	Adults        int    `json:"adults" query:"adults"`
	Infants       int    `json:"infants" query:"infants"`
}

func (p *SearchParams) Validate() error {
	if p.Origin == "" {
		p.Origin = "NRT"
	}
	if p.Destination == "" {
		return ErrMissingDestination
	}
	if p.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if p.ReturnDate == "" {
		return ErrMissingReturnDate
	}
	if p.Adults < 1 {
		p.Adults = 1
	}
	if p.Infants < 0 {
		p.Infants = 0
	}
	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departureDate is required"
	ErrMissingReturnDate    ValidationError = "returnDate is required"
)
