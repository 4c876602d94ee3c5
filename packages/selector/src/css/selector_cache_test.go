package css_test

import (
	"errors"
	"sync"
	"testing"

	"ngsel-go/packages/selector/src/css"
)

func TestSelectorCache(t *testing.T) {
	t.Run("should return the shared parse result", func(t *testing.T) {
		cache, err := css.NewSelectorCache(8)
		if err != nil {
			t.Fatal(err)
		}
		first, err := cache.Parse("input[type=text], textarea")
		if err != nil {
			t.Fatal(err)
		}
		second, err := cache.Parse("input[type=text], textarea")
		if err != nil {
			t.Fatal(err)
		}
		if len(first) != 2 || first[0] != second[0] || first[1] != second[1] {
			t.Errorf("expected cached selectors to be reused, got %v and %v", first, second)
		}
		if cache.Len() != 1 {
			t.Errorf("Len() = %d, want 1", cache.Len())
		}
	})

	t.Run("should cache parse failures", func(t *testing.T) {
		cache, err := css.NewSelectorCache(0)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 2; i++ {
			result, err := cache.Parse("a:not(:not(b))")
			if !errors.Is(err, css.ErrNestedNot) {
				t.Errorf("attempt %d: expected ErrNestedNot, got %v", i, err)
			}
			if result != nil {
				t.Errorf("attempt %d: expected no result, got %v", i, result)
			}
		}
		if cache.Len() != 1 {
			t.Errorf("Len() = %d, want 1", cache.Len())
		}
	})

	t.Run("should evict least recently used selectors", func(t *testing.T) {
		cache, err := css.NewSelectorCache(2)
		if err != nil {
			t.Fatal(err)
		}
		for _, source := range []string{"a", "b", "c"} {
			if _, err := cache.Parse(source); err != nil {
				t.Fatal(err)
			}
		}
		if cache.Len() != 2 {
			t.Errorf("Len() = %d, want 2", cache.Len())
		}
		cache.Purge()
		if cache.Len() != 0 {
			t.Errorf("Len() after Purge = %d, want 0", cache.Len())
		}
	})

	t.Run("should be safe for concurrent use", func(t *testing.T) {
		cache, err := css.NewSelectorCache(4)
		if err != nil {
			t.Fatal(err)
		}
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for _, source := range []string{"[a]", ".b", "c:not(.d)", "e, f"} {
					if _, err := cache.Parse(source); err != nil {
						t.Error(err)
					}
				}
			}()
		}
		wg.Wait()
	})
}
