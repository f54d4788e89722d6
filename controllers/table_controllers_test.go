package controllers_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/restaurant-reservations/models"
)

func TestCreateTable(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.do(t, http.MethodPost, "/tables", gin.H{"number": 7, "capacity": 6, "location": "Patio"})
	require.Equal(t, http.StatusCreated, w.Code, resp.Message)
	assert.Equal(t, "Table created successfully", resp.Message)
	table := decode[models.Table](t, resp.Data)
	assert.True(t, table.Active)

	w, resp = env.do(t, http.MethodPost, "/tables", gin.H{"number": 7, "capacity": 2, "location": "Bar"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "duplicate_key", resp.Error)

	w, _ = env.do(t, http.MethodPost, "/tables", gin.H{"number": 8, "capacity": 0, "location": "Bar"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTables(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/tables", gin.H{"number": 1, "capacity": 4, "location": "Hall", "active": false})

	w, resp := env.do(t, http.MethodGet, "/tables", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List of tables", resp.Message)
	tables := decode[[]models.Table](t, resp.Data)
	require.Len(t, tables, 2)
	assert.Equal(t, uint(1), tables[0].Number)

	w, resp = env.do(t, http.MethodGet, "/tables?active=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Table](t, resp.Data), 1)

	w, resp = env.do(t, http.MethodGet, "/tables/capacity/4", nil)
	require.Equal(t, http.StatusOK, w.Code)
	byCap := decode[[]models.Table](t, resp.Data)
	require.Len(t, byCap, 1)
	assert.Equal(t, uint(5), byCap[0].Number)
}

func TestUpdateTable(t *testing.T) {
	env := newTestEnv(t)
	id := env.book(t, "2030-01-08T19:00", "")

	w, resp := env.do(t, http.MethodPatch, "/tables/5", gin.H{"number": 15, "location": "Roof"})
	require.Equal(t, http.StatusOK, w.Code, resp.Message)
	table := decode[models.Table](t, resp.Data)
	assert.Equal(t, uint(15), table.Number)
	assert.Equal(t, "Roof", table.Location)

	r, err := env.store.Reservations.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, uint(15), r.TableNumber)

	w, _ = env.do(t, http.MethodGet, "/tables/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteTable(t *testing.T) {
	env := newTestEnv(t)
	env.book(t, "2030-01-08T19:00", "")

	w, resp := env.do(t, http.MethodDelete, "/tables/5", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "has_active_reservations", resp.Error)

	env.do(t, http.MethodPost, "/tables", gin.H{"number": 9, "capacity": 2, "location": "Bar"})
	w, _ = env.do(t, http.MethodDelete, "/tables/9", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodDelete, "/tables/9", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
