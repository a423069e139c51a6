package reconcile

import (
	"context"
	"testing"

	"kg-sync/core/kg"
	"kg-sync/core/kg/mocks"
	"kg-sync/core/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	p := &schema.Product{
		Name:   "Widget",
		SKU:    "W-1",
		Image:  []string{"https://img.example/a.png", "https://img.example/b.png"},
		Offers: &schema.Offer{Price: "12.50", Availability: string(schema.InStock)},
	}

	tests := []struct {
		name     string
		existing kg.RemoteEntity
		want     []kg.PatchOp
	}{
		{
			name: "Identical",
			existing: kg.RemoteEntity{
				Name: "Widget", SKU: "W-1", Image: "https://img.example/a.png",
				Price: "12.50", Availability: string(schema.InStock),
			},
			want: nil,
		},
		{
			name: "HttpSchemaAvailability",
			existing: kg.RemoteEntity{
				Name: "Widget", SKU: "W-1", Image: "https://img.example/a.png",
				Price: "12.50", Availability: "http://schema.org/InStock",
			},
			want: nil,
		},
		{
			name: "AvailabilityChanged",
			existing: kg.RemoteEntity{
				Name: "Widget", SKU: "W-1", Image: "https://img.example/a.png",
				Price: "12.50", Availability: "http://schema.org/OutOfStock",
			},
			want: []kg.PatchOp{
				{Op: "replace", Path: "/https://schema.org/availability", Value: "https://schema.org/InStock"},
			},
		},
		{
			name: "ReplaceAddRemove",
			existing: kg.RemoteEntity{
				Name: "Old", Description: "gone", Image: "https://img.example/a.png",
				Price: "12.50", Availability: string(schema.InStock),
			},
			want: []kg.PatchOp{
				{Op: "replace", Path: "/https://schema.org/name", Value: "Widget"},
				{Op: "remove", Path: "/https://schema.org/description"},
				{Op: "add", Path: "/https://schema.org/sku", Value: "W-1"},
			},
		},
		{
			name:     "EmptyRemote",
			existing: kg.RemoteEntity{},
			want: []kg.PatchOp{
				{Op: "add", Path: "/https://schema.org/name", Value: "Widget"},
				{Op: "add", Path: "/https://schema.org/price", Value: "12.50"},
				{Op: "add", Path: "/https://schema.org/image", Value: "https://img.example/a.png"},
				{Op: "add", Path: "/https://schema.org/sku", Value: "W-1"},
				{Op: "add", Path: "/https://schema.org/availability", Value: string(schema.InStock)},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Diff(&tt.existing, p))
		})
	}
}

func TestIncremental(t *testing.T) {
	idX := base + "/01/" + codeX
	idY := base + "/01/" + codeY
	idZ := base + "/01/00000096385074"

	client := new(mocks.Client)
	client.On("GetEntity", mock.Anything, idX).Return(&kg.RemoteEntity{IRI: idX, Name: "Old name"}, nil)
	client.On("GetEntity", mock.Anything, idY).Return(&kg.RemoteEntity{IRI: idY, Name: "Same"}, nil)
	client.On("GetEntity", mock.Anything, idZ).Return(nil, kg.ErrNotFound)
	client.On("PatchEntity", mock.Anything, idX, []kg.PatchOp{
		{Op: "replace", Path: "/https://schema.org/name", Value: "New name"},
	}).Return(nil).Once()

	o := newOrchestrator(t, client, Options{})
	stats, err := o.Incremental(context.Background(), []map[string]any{
		{"gtin": codeX, "name": "New name"},
		{"gtin": codeY, "name": "Same"},
		{"gtin": "96385074", "name": "Missing"},
		{"name": "No code"},
	})
	require.NoError(t, err)

	assert.Equal(t, &Stats{Total: 4, Updated: 1, NoChanges: 1, Errors: 2}, stats)
	client.AssertNumberOfCalls(t, "PatchEntity", 1)
	client.AssertNotCalled(t, "BatchUpsert", mock.Anything, mock.Anything)

	t.Run("PatchFailure", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, idX).Return(&kg.RemoteEntity{IRI: idX}, nil)
		client.On("PatchEntity", mock.Anything, idX, mock.Anything).Return(kg.ErrRemoteRejected)

		stats, err := newOrchestrator(t, client, Options{}).Incremental(context.Background(), []map[string]any{
			{"gtin": codeX, "name": "New name"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Errors)
		assert.Equal(t, 0, stats.Updated)
	})

	t.Run("DryRun", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetEntity", mock.Anything, idX).Return(&kg.RemoteEntity{IRI: idX}, nil)

		stats, err := newOrchestrator(t, client, Options{DryRun: true}).Incremental(context.Background(), []map[string]any{
			{"gtin": codeX, "name": "New name"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Skipped)
		client.AssertNotCalled(t, "PatchEntity", mock.Anything, mock.Anything, mock.Anything)
	})
}
