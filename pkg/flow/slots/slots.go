package slots

import "strings"

// Slot keys mirror the columns the sales flow cares about.
const (
	KeyProduct           = "product"
	KeyLocation          = "location"
	KeyApproximateVolume = "approximate_volume"
	KeyDeadline          = "deadline"
)

// SlotSet holds values extracted from a single utterance. A nil field means
// the utterance did not mention it.
type SlotSet struct {
	Product           *string `json:"product"`
	Location          *string `json:"location"`
	ApproximateVolume *string `json:"approximate_volume"`
	Deadline          *string `json:"deadline"`
}

// Empty is the degraded result used when extraction fails entirely.
func Empty() SlotSet {
	return SlotSet{}
}

func clean(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Normalize trims all values and drops blank ones.
func (s SlotSet) Normalize() SlotSet {
	return SlotSet{
		Product:           clean(s.Product),
		Location:          clean(s.Location),
		ApproximateVolume: clean(s.ApproximateVolume),
		Deadline:          clean(s.Deadline),
	}
}

// Values returns the present slots as a name->value map. Only non-empty
// values are included, which is also the persistence rule.
func (s SlotSet) Values() map[string]string {
	values := make(map[string]string, 4)
	if s.Product != nil {
		values[KeyProduct] = *s.Product
	}
	if s.Location != nil {
		values[KeyLocation] = *s.Location
	}
	if s.ApproximateVolume != nil {
		values[KeyApproximateVolume] = *s.ApproximateVolume
	}
	if s.Deadline != nil {
		values[KeyDeadline] = *s.Deadline
	}
	return values
}

// Merge overlays this extraction on top of previously known session values.
// The current utterance wins on conflict.
func (s SlotSet) Merge(previous map[string]string) SlotSet {
	merged := s
	set := func(target **string, key string) {
		if *target == nil {
			if v, ok := previous[key]; ok && v != "" {
				value := v
				*target = &value
			}
		}
	}
	set(&merged.Product, KeyProduct)
	set(&merged.Location, KeyLocation)
	set(&merged.ApproximateVolume, KeyApproximateVolume)
	set(&merged.Deadline, KeyDeadline)
	return merged
}

func (s SlotSet) HasProduct() bool {
	return s.Product != nil
}

func (s SlotSet) HasLocation() bool {
	return s.Location != nil
}
