package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"adminconsole/internal/domain/models"
	"adminconsole/internal/query"
)

func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL, WithBackoff(time.Millisecond, 2*time.Millisecond))
	return c, srv
}

func contactsPage(items []models.Contact, page, perPage int, total int64) []byte {
	body, _ := json.Marshal(map[string]any{
		"items":      items,
		"pagination": query.NewPagination(total, page, perPage),
	})
	return body
}

func TestFetchCachesByEndpointAndQuery(t *testing.T) {
	var hits int64
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		w.Write(contactsPage([]models.Contact{{ID: 1, FirstName: "Ada"}}, 1, 10, 25))
	}))

	q := query.New()
	first, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q, FetchOptions[Page[models.Contact]]{})
	if err != nil {
		t.Fatalf("first fetch error: %v", err)
	}
	if first.FromCache {
		t.Fatal("first fetch should hit the network")
	}

	second, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q, FetchOptions[Page[models.Contact]]{})
	if err != nil {
		t.Fatalf("second fetch error: %v", err)
	}
	if !second.FromCache {
		t.Fatal("identical query should be served from cache")
	}
	if second.Data.Items[0].FirstName != "Ada" {
		t.Fatalf("unexpected cached data: %+v", second.Data)
	}

	q2 := query.New()
	q2.SetPage(2)
	third, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q2, FetchOptions[Page[models.Contact]]{})
	if err != nil {
		t.Fatalf("third fetch error: %v", err)
	}
	if third.FromCache {
		t.Fatal("a different page is a different cache key")
	}
}

func TestMutationInvalidatesListCache(t *testing.T) {
	var total int64 = 1
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			atomic.AddInt64(&total, 1)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.Contact{ID: 2, FirstName: "Grace"})
			return
		}
		n := atomic.LoadInt64(&total)
		w.Write(contactsPage(make([]models.Contact, 0), 1, 10, n))
	}))

	q := query.New()
	before, err := c.Contacts().List(context.Background(), q)
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if before.Pagination.TotalItems != 1 {
		t.Fatalf("expected 1 item before create, got %d", before.Pagination.TotalItems)
	}

	if _, err := c.Contacts().Create(context.Background(), ContactInput{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com",
	}); err != nil {
		t.Fatalf("create error: %v", err)
	}

	after, err := c.Contacts().List(context.Background(), q)
	if err != nil {
		t.Fatalf("list after create error: %v", err)
	}
	if after.Pagination.TotalItems != 2 {
		t.Fatalf("create should invalidate the list cache: got total %d", after.Pagination.TotalItems)
	}
}

func TestReadRetriesButWritesDoNot(t *testing.T) {
	var reads, writes int64
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			if atomic.AddInt64(&reads, 1) == 1 {
				http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
				return
			}
			w.Write(contactsPage(nil, 1, 10, 0))
			return
		}
		atomic.AddInt64(&writes, 1)
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))

	if _, err := c.Contacts().List(context.Background(), query.New()); err != nil {
		t.Fatalf("read should succeed after one retry: %v", err)
	}
	if got := atomic.LoadInt64(&reads); got != 2 {
		t.Fatalf("expected 2 read attempts, got %d", got)
	}

	_, err := c.Contacts().Create(context.Background(), ContactInput{FirstName: "A", LastName: "B", Email: "a@b.c"})
	if err == nil {
		t.Fatal("write should fail without retrying")
	}
	if got := atomic.LoadInt64(&writes); got != 1 {
		t.Fatalf("writes must run exactly once, got %d attempts", got)
	}
}

func TestFetchErrorKeepsLastData(t *testing.T) {
	var failing atomic.Bool
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			http.Error(w, `{"error":"down"}`, http.StatusInternalServerError)
			return
		}
		w.Write(contactsPage([]models.Contact{{ID: 1, FirstName: "Ada"}}, 1, 10, 1))
	}))
	c.MaxRetries = 0

	q := query.New()
	if _, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q, FetchOptions[Page[models.Contact]]{}); err != nil {
		t.Fatalf("prime fetch error: %v", err)
	}

	failing.Store(true)
	res, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q, FetchOptions[Page[models.Contact]]{Refresh: true})
	if err == nil {
		t.Fatal("expected an error from the failing server")
	}
	if !res.FromCache || len(res.Data.Items) != 1 || res.Data.Items[0].FirstName != "Ada" {
		t.Fatalf("stale data should survive the error: %+v", res)
	}
}

func TestFetchDisabledSkips(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("disabled fetch must not touch the network")
	}))

	res, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", query.New(),
		FetchOptions[Page[models.Contact]]{Disabled: true})
	if err != nil {
		t.Fatalf("disabled fetch error: %v", err)
	}
	if !res.Skipped {
		t.Fatal("expected Skipped=true")
	}
}

func TestFetchNormalizerAppliesToCachedHits(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(contactsPage([]models.Contact{{ID: 1, FirstName: "ada"}}, 1, 10, 1))
	}))

	upper := func(p Page[models.Contact]) Page[models.Contact] {
		for i := range p.Items {
			p.Items[i].FirstName = "ADA"
		}
		return p
	}
	opts := FetchOptions[Page[models.Contact]]{Normalizer: upper}

	q := query.New()
	for i := 0; i < 2; i++ {
		res, err := Fetch[Page[models.Contact]](context.Background(), c, "/app/contacts", q, opts)
		if err != nil {
			t.Fatalf("fetch %d error: %v", i, err)
		}
		if res.Data.Items[0].FirstName != "ADA" {
			t.Fatalf("fetch %d: normalizer not applied: %+v", i, res.Data.Items[0])
		}
	}
}

func TestStaleResponseNeverOverwritesNewer(t *testing.T) {
	qc := newQueryCache()
	key := cacheKey("/app/contacts", "page=1")

	slow := qc.nextGen()
	fast := qc.nextGen()

	if !qc.store(key, fast, json.RawMessage(`{"v":2}`)) {
		t.Fatal("newer response should store")
	}
	if qc.store(key, slow, json.RawMessage(`{"v":1}`)) {
		t.Fatal("older response must not overwrite a newer one")
	}
	raw, ok := qc.get(key)
	if !ok || string(raw) != `{"v":2}` {
		t.Fatalf("cache rolled back: %s", raw)
	}
}

func TestInvalidateNotifiesPrefixSubscribers(t *testing.T) {
	qc := newQueryCache()
	qc.store(cacheKey("/app/roles", "page=1"), qc.nextGen(), json.RawMessage(`{}`))

	fired := 0
	unsubscribe := qc.Subscribe("/app/roles", func() { fired++ })
	qc.Invalidate("/app/roles")
	if fired != 1 {
		t.Fatalf("subscriber should fire once, got %d", fired)
	}
	if _, ok := qc.get(cacheKey("/app/roles", "page=1")); ok {
		t.Fatal("entry should be gone after invalidation")
	}

	unsubscribe()
	qc.Invalidate("/app/roles")
	if fired != 1 {
		t.Fatalf("unsubscribed handler must not fire, got %d", fired)
	}
}

func TestMutationCallbackRunsBeforeInvalidation(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.Contact{ID: 9, FirstName: "Grace"})
	}))

	var order []string
	unsubscribe := c.Subscribe("/app/contacts", func() { order = append(order, "invalidated") })
	defer unsubscribe()

	m := Mutation[ContactInput, models.Contact]{
		Client:         c,
		Method:         http.MethodPost,
		Path:           func(ContactInput) string { return "/app/contacts" },
		InvalidateKeys: []string{"/app/contacts"},
		OnSuccess:      func(models.Contact) { order = append(order, "callback") },
	}
	if _, err := m.Do(context.Background(), ContactInput{FirstName: "G", LastName: "H", Email: "g@h.i"}); err != nil {
		t.Fatalf("mutation error: %v", err)
	}
	if len(order) != 2 || order[0] != "callback" || order[1] != "invalidated" {
		t.Fatalf("success callback must run before invalidation, got %v", order)
	}
}

func TestAPIErrorClassification(t *testing.T) {
	c, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"role not found"}`, http.StatusNotFound)
	}))

	_, err := c.Roles().Get(context.Background(), 99)
	if !IsNotFound(err) {
		t.Fatalf("expected not-found classification, got %v", err)
	}
	if want := fmt.Sprintf("admin API %d: role not found", http.StatusNotFound); err.Error() != want {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
