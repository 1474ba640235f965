// internal/adapters/in/http/handlers/stubs_test.go
package handlers

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"sync"

	cartdom "foodhall/internal/domain/cart"
	fooddom "foodhall/internal/domain/fooditem"
)

type fakeFoodRepo struct {
	mu    sync.Mutex
	items map[string]fooddom.FoodItem
}

func newFakeFoodRepo() *fakeFoodRepo {
	return &fakeFoodRepo{items: map[string]fooddom.FoodItem{}}
}

func (r *fakeFoodRepo) List(_ context.Context) ([]fooddom.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]fooddom.FoodItem, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it)
	}
	return out, nil
}

func (r *fakeFoodRepo) GetByID(_ context.Context, id string) (fooddom.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return fooddom.FoodItem{}, fooddom.ErrNotFound
	}
	return it, nil
}

func (r *fakeFoodRepo) Create(_ context.Context, item fooddom.FoodItem) (fooddom.FoodItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; ok {
		return fooddom.FoodItem{}, fooddom.ErrConflict
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeFoodRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return fooddom.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeFoodRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeUploader struct {
	url   string
	err   error
	calls int
}

func (u *fakeUploader) Upload(_ context.Context, _ []byte, _ string) (string, error) {
	u.calls++
	if u.err != nil {
		return "", u.err
	}
	return u.url, nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]cartdom.Items
	fail  bool
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]cartdom.Items{}}
}

var errStoreDown = errors.New("store unavailable")

func (r *fakeCartRepo) IncrementItem(_ context.Context, sessionKey, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStoreDown
	}
	items, ok := r.carts[sessionKey]
	if !ok {
		items = cartdom.Items{}
		r.carts[sessionKey] = items
	}
	items[itemID] = items[itemID] + 1
	return nil
}

func (r *fakeCartRepo) DecrementItem(_ context.Context, sessionKey, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errStoreDown
	}
	items, ok := r.carts[sessionKey]
	if !ok {
		return nil
	}
	q, ok := items[itemID]
	if !ok {
		return nil
	}
	if q <= 1 {
		delete(items, itemID)
	} else {
		items[itemID] = q - 1
	}
	return nil
}

func (r *fakeCartRepo) Get(_ context.Context, sessionKey string) (cartdom.Items, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return nil, errStoreDown
	}
	items, ok := r.carts[sessionKey]
	if !ok {
		return cartdom.Items{}, nil
	}
	return items.Clone(), nil
}

// staticVerifier maps exact tokens to session keys.
type staticVerifier struct {
	sessions map[string]string
}

func (v *staticVerifier) VerifySessionToken(_ context.Context, token string) (string, error) {
	key, ok := v.sessions[token]
	if !ok {
		return "", errors.New("unknown token")
	}
	return key, nil
}

// multipartFoodBody builds a multipart body for POST /api/food/add.
func multipartFoodBody(fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	if imageName != "" {
		fw, err := mw.CreateFormFile("image", imageName)
		if err != nil {
			return nil, "", err
		}
		if _, err := fw.Write(image); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
