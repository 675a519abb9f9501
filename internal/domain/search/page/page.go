package page

// Page computes the offset/limit window for a 1-based page number and a
// fixed page size.
type Page struct {
	number int
	size   int
}

// New clamps number to a minimum of 1; zero or negative input means page 1.
func New(number, size int) Page {
	if number < 1 {
		number = 1
	}
	return Page{number: number, size: size}
}

// Number returns the 1-based page number.
func (p Page) Number() int { return p.number }

// Size returns the page size, passed as the search limit.
func (p Page) Size() int { return p.size }

// From returns the search offset: size * (number-1).
func (p Page) From() int { return p.size * (p.number - 1) }

// Next returns the following page number.
func (p Page) Next() int { return p.number + 1 }

// HasNext reports whether another page exists for the given total hit count.
// The last page is a ceiling: a partial trailing page still counts.
func (p Page) HasNext(total int) bool {
	if total <= 0 || p.size <= 0 {
		return false
	}
	last := (total + p.size - 1) / p.size
	return p.number+1 <= last
}
