package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podstore/podstore/internal/models"
	"github.com/podstore/podstore/internal/utils"
)

type mockProductWriter struct {
	products map[string]*models.Product
	creates  int
	updates  int
	deletes  int
}

func newMockProductWriter() *mockProductWriter {
	return &mockProductWriter{products: map[string]*models.Product{}}
}

func (m *mockProductWriter) GetAll() ([]models.Product, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductWriter) GetByID(id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (m *mockProductWriter) Create(product *models.Product) error {
	m.creates++
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductWriter) Update(product *models.Product) error {
	m.updates++
	if _, ok := m.products[product.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *product
	m.products[product.ID] = &cp
	return nil
}

func (m *mockProductWriter) Delete(id string) error {
	if _, ok := m.products[id]; !ok {
		return sql.ErrNoRows
	}
	m.deletes++
	delete(m.products, id)
	return nil
}

type mockRefresher struct {
	refreshes int
}

func (m *mockRefresher) Refresh(context.Context) error {
	m.refreshes++
	return nil
}

func validForm() *ProductForm {
	return &ProductForm{
		Name:        "Pod A",
		Description: "A pod",
		Price:       "10.00",
		Stock:       "5",
		Category:    "pods",
		ImageURL:    "https://img.podstore.app/pod-a.png",
	}
}

func TestSaveCreatesWhenIDEmpty(t *testing.T) {
	writer := newMockProductWriter()
	refresher := &mockRefresher{}
	svc := NewProductManagementService(writer, refresher)

	product, err := svc.Save(context.Background(), "", validForm())
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.InDelta(t, 10.00, product.Price, 1e-9)
	assert.Equal(t, 5, product.Stock)
	assert.Equal(t, 1, writer.creates)
	assert.Zero(t, writer.updates)
	assert.Equal(t, 1, refresher.refreshes, "save reloads the full list")
}

func TestSaveUpdatesExisting(t *testing.T) {
	writer := newMockProductWriter()
	writer.products["p1"] = &models.Product{ID: "p1", Name: "Pod A", Price: 10, Stock: 5}
	refresher := &mockRefresher{}
	svc := NewProductManagementService(writer, refresher)

	form := validForm()
	form.Name = "Pod B"
	product, err := svc.Save(context.Background(), "p1", form)
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
	assert.Equal(t, 1, writer.updates)
	assert.Zero(t, writer.creates)

	// The reloaded list reflects the new name.
	list, err := svc.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pod B", list[0].Name)
}

func TestSaveUnknownIDIsNotFound(t *testing.T) {
	svc := NewProductManagementService(newMockProductWriter(), &mockRefresher{})

	_, err := svc.Save(context.Background(), "ghost", validForm())
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestSaveRejectsMalformedNumbers(t *testing.T) {
	writer := newMockProductWriter()
	svc := NewProductManagementService(writer, &mockRefresher{})
	ctx := context.Background()

	cases := []struct {
		name  string
		price string
		stock string
	}{
		{"price not a number", "ten", "5"},
		{"price negative", "-1", "5"},
		{"stock not an integer", "10.00", "many"},
		{"stock fractional", "10.00", "2.5"},
		{"stock negative", "10.00", "-3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			form := validForm()
			form.Price = tc.price
			form.Stock = tc.stock

			_, err := svc.Save(ctx, "", form)
			assert.ErrorIs(t, err, utils.ErrValidation)
		})
	}
	assert.Zero(t, writer.creates, "invalid input must be rejected before any write")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	writer := newMockProductWriter()
	writer.products["p1"] = &models.Product{ID: "p1", Name: "Pod A"}
	refresher := &mockRefresher{}
	svc := NewProductManagementService(writer, refresher)
	ctx := context.Background()

	err := svc.Delete(ctx, "p1", false)
	assert.ErrorIs(t, err, utils.ErrConfirmationMissing)
	assert.Zero(t, writer.deletes, "denied confirmation must not issue a write")
	assert.Zero(t, refresher.refreshes)

	require.NoError(t, svc.Delete(ctx, "p1", true))
	assert.Equal(t, 1, writer.deletes)
	assert.Equal(t, 1, refresher.refreshes)
}

func TestDeleteUnknownIDIsNotFound(t *testing.T) {
	svc := NewProductManagementService(newMockProductWriter(), &mockRefresher{})

	err := svc.Delete(context.Background(), "ghost", true)
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}
