// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/party-vote/models"
	"github.com/danielhkuo/party-vote/testutil"
)

func TestSubmitDedication(t *testing.T) {
	ctx := context.Background()
	store := newMemory()
	svc := NewDedicationService(newCoordinator(store), nil)

	res, err := svc.SubmitDedication(ctx, " Marta ", "¡Feliz cumple, Lu!")
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.True(t, res.WrittenRemotely)
	assert.Equal(t, "Marta", res.Author)

	remote, err := store.Read(ctx, models.TableDedications)
	require.NoError(t, err)
	require.Len(t, remote.Rows, 1)
	assert.Equal(t, models.Row{"Marta", "¡Feliz cumple, Lu!"}, remote.Rows[0])
}

func TestSubmitDedication_AnonymousAuthor(t *testing.T) {
	ctx := context.Background()
	svc := NewDedicationService(newCoordinator(newMemory()), nil)

	for _, author := range []string{"", "   "} {
		res, err := svc.SubmitDedication(ctx, author, "hola")
		require.NoError(t, err)
		assert.Equal(t, models.AnonymousAuthor, res.Author)
	}
}

func TestSubmitDedication_RejectsBlankMessage(t *testing.T) {
	ctx := context.Background()
	c := newCoordinator(newMemory())
	svc := NewDedicationService(c, nil)

	for _, msg := range []string{"", "  \n\t "} {
		res, err := svc.SubmitDedication(ctx, "Marta", msg)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "got %v", err)
		assert.Contains(t, verr.Fields, "message")
		assert.False(t, res.Accepted)
	}
	assert.Equal(t, 0, c.Cache().Len(models.TableDedications))
}

func TestListDedications_NewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := NewDedicationService(newCoordinator(newMemory()), nil)

	for _, msg := range []string{"primero", "segundo", "tercero"} {
		_, err := svc.SubmitDedication(ctx, "", msg)
		require.NoError(t, err)
	}

	got, err := svc.ListDedications(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "tercero", got[0].Message)
	assert.Equal(t, "primero", got[2].Message)
}

func TestListDedications_HeaderlessTable(t *testing.T) {
	ctx := context.Background()
	store := newMemory()
	require.NoError(t, store.Replace(ctx, models.TableDedications, models.Table{Name: models.TableDedications}))
	svc := NewDedicationService(newCoordinator(store), nil)

	got, err := svc.ListDedications(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestListDedications_FailingStore(t *testing.T) {
	ctx := context.Background()
	svc := NewDedicationService(newCoordinator(testutil.NewFailingStore()), nil)

	got, err := svc.ListDedications(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	res, err := svc.SubmitDedication(ctx, "", "sin conexión")
	require.NoError(t, err)
	assert.False(t, res.WrittenRemotely)

	got, err = svc.ListDedications(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.DedicationRecord{Author: models.AnonymousAuthor, Message: "sin conexión"}, got[0])
}

func TestListDedications_SkipsBlankRows(t *testing.T) {
	ctx := context.Background()
	store := newMemory()
	testutil.SeedTable(t, store, models.TableDedications,
		models.Row{"Marta", "hola"},
		models.Row{"Pablo", "  "},
		models.Row{"", "anónimo"},
	)
	svc := NewDedicationService(newCoordinator(store), nil)

	got, err := svc.ListDedications(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.AnonymousAuthor, got[0].Author)
	assert.Equal(t, "Marta", got[1].Author)
}
