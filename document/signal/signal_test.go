package signal

import "testing"

func TestNotifyDeliversInRegistrationOrder(t *testing.T) {
	h := NewHub[int]()

	var got []int
	h.Subscribe(func(v int) { got = append(got, v*10) })
	h.Subscribe(func(v int) { got = append(got, v*100) })

	h.Notify(3)

	if len(got) != 2 || got[0] != 30 || got[1] != 300 {
		t.Errorf("delivery = %v, want [30 300]", got)
	}
}

func TestUnsubscribe(t *testing.T) {
	h := NewHub[string]()

	var first, second int
	sub := h.Subscribe(func(string) { first++ })
	h.Subscribe(func(string) { second++ })

	h.Notify("a")
	h.Unsubscribe(sub)
	h.Notify("b")

	if first != 1 {
		t.Errorf("unsubscribed handler ran %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("live handler ran %d times, want 2", second)
	}
	if got := h.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestUnsubscribeOutOfRange(t *testing.T) {
	h := NewHub[int]()
	h.Subscribe(func(int) {})

	h.Unsubscribe(Subscription(42))
	h.Unsubscribe(Subscription(-1))

	if got := h.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestNotifyEmptyHub(t *testing.T) {
	h := NewHub[struct{}]()
	h.Notify(struct{}{})
}
