package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestResolveImageOwner(t *testing.T) {
	articleID := uuid.New()
	actionID := uuid.New()

	tests := []struct {
		name       string
		articleID  *uuid.UUID
		actionID   *uuid.UUID
		wantCol    string
		wantID     uuid.UUID
		wantPrefix string
		wantErr    bool
	}{
		{
			name:       "article owner",
			articleID:  &articleID,
			wantCol:    "article_id",
			wantID:     articleID,
			wantPrefix: "articles",
		},
		{
			name:       "action owner",
			actionID:   &actionID,
			wantCol:    "action_id",
			wantID:     actionID,
			wantPrefix: "actions",
		},
		{
			name:    "no owner",
			wantErr: true,
		},
		{
			name:      "both owners",
			articleID: &articleID,
			actionID:  &actionID,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, id, prefix, err := resolveImageOwner(tt.articleID, tt.actionID)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrImageOwner)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantCol, col)
			require.Equal(t, tt.wantID, id)
			require.Equal(t, tt.wantPrefix, prefix)
		})
	}
}
