package slots

import "testing"

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	set := SlotSet{
		Product:  strPtr("  vinyl flooring "),
		Location: strPtr("   "),
	}.Normalize()

	if set.Product == nil || *set.Product != "vinyl flooring" {
		t.Errorf("Product = %v, want trimmed value", set.Product)
	}
	if set.Location != nil {
		t.Errorf("Location = %v, want nil for blank value", set.Location)
	}
}

func TestValuesSkipsMissing(t *testing.T) {
	set := SlotSet{
		Product:  strPtr("drywall"),
		Deadline: strPtr("next month"),
	}

	values := set.Values()
	if len(values) != 2 {
		t.Fatalf("len(values) = %d, want 2", len(values))
	}
	if values[KeyProduct] != "drywall" {
		t.Errorf("product = %q", values[KeyProduct])
	}
	if values[KeyDeadline] != "next month" {
		t.Errorf("deadline = %q", values[KeyDeadline])
	}
}

func TestMerge(t *testing.T) {
	previous := map[string]string{
		KeyProduct:  "vinyl flooring",
		KeyLocation: "Porto Alegre",
	}

	t.Run("previous values fill gaps", func(t *testing.T) {
		merged := SlotSet{}.Merge(previous)
		if merged.Product == nil || *merged.Product != "vinyl flooring" {
			t.Errorf("Product = %v, want previous value", merged.Product)
		}
		if merged.Location == nil || *merged.Location != "Porto Alegre" {
			t.Errorf("Location = %v, want previous value", merged.Location)
		}
	})

	t.Run("current extraction wins on conflict", func(t *testing.T) {
		merged := SlotSet{Product: strPtr("acoustic panels")}.Merge(previous)
		if *merged.Product != "acoustic panels" {
			t.Errorf("Product = %q, want current value", *merged.Product)
		}
		if *merged.Location != "Porto Alegre" {
			t.Errorf("Location = %q, want previous value", *merged.Location)
		}
	})

	t.Run("empty previous map is a no-op", func(t *testing.T) {
		merged := SlotSet{Product: strPtr("brise")}.Merge(nil)
		if *merged.Product != "brise" || merged.Location != nil {
			t.Errorf("unexpected merge result: %+v", merged)
		}
	})
}
