package barwatch

import (
	"testing"
)

func TestJsonObjectWriter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var w jsonObjectWriter
		raw, err := w.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		if string(raw) != "{}" {
			t.Errorf("got %s, want {}", raw)
		}
	})

	t.Run("append keeps order", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("b", 1).Append("a", "two").Append("c", []int{3})
		raw, err := w.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		want := `{"b":1,"a":"two","c":[3]}`
		if string(raw) != want {
			t.Errorf("got %s, want %s", raw, want)
		}
	})

	t.Run("embed from struct", func(t *testing.T) {
		var w jsonObjectWriter
		w.EmbedFrom(struct {
			Name string `json:"name"`
		}{"silver"}).Append("count", 2)
		raw, err := w.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		want := `{"name":"silver","count":2}`
		if string(raw) != want {
			t.Errorf("got %s, want %s", raw, want)
		}
	})

	t.Run("optional skips zero values", func(t *testing.T) {
		var w jsonObjectWriter
		w.Optional("empty", "").Optional("zero", 0).Optional("kept", "x")
		raw, err := w.MarshalJSON()
		if err != nil {
			t.Fatal(err)
		}
		want := `{"kept":"x"}`
		if string(raw) != want {
			t.Errorf("got %s, want %s", raw, want)
		}
	})

	t.Run("marshal error sticks", func(t *testing.T) {
		var w jsonObjectWriter
		w.Append("bad", func() {}).Append("later", 1)
		if _, err := w.MarshalJSON(); err == nil {
			t.Error("unmarshalable value should surface as an error")
		}
	})
}
