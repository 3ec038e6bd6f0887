package domain

type ExhaustionVariant string

const (
	NoPlaces      ExhaustionVariant = "no_places"
	NoMorePlaces  ExhaustionVariant = "no_more_places"
	LookElsewhere ExhaustionVariant = "look_elsewhere"
)

// Sessions that aggregated at least this many places get the generic
// closing message instead of "no (more) places found".
const LookElsewhereThreshold = 60

const moveAdvice = "You should probably move ..."

// Exhaustion is the final message shown once no further places remain.
type Exhaustion struct {
	Variant  ExhaustionVariant
	Headline string
	Advice   string
	Total    int
}

func NewExhaustion(total int) Exhaustion {
	e := Exhaustion{Advice: moveAdvice, Total: total}
	switch {
	case total >= LookElsewhereThreshold:
		e.Variant = LookElsewhere
		e.Headline = "Didn't like those?"
	case total > 0:
		e.Variant = NoMorePlaces
		e.Headline = "No more places found."
	default:
		e.Variant = NoPlaces
		e.Headline = "No places found."
	}
	return e
}

func (e Exhaustion) Message() string {
	return e.Headline + " " + e.Advice
}
