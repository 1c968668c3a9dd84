package etl

import (
	"disaster-response/domain"
	"disaster-response/errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMessages(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "messages.csv",
		"id,message,original,genre\n"+
			"2,Weather update - a cold front from Cuba,Un front froid,direct\n"+
			"7,\"Is the Hurricane over, or is it not over\",Cyclone nan fini osinon li pa fini,direct\n"+
			"8,says: west side of Haiti,,direct\n")

	messages, err := LoadMessages(path)
	req.NoError(err)
	req.Len(messages, 3)
	req.Equal(domain.Message{ID: 2, Text: "Weather update - a cold front from Cuba", Original: "Un front froid", Genre: "direct"}, messages[0])
	req.Equal("Is the Hurricane over, or is it not over", messages[1].Text)
	req.Equal("", messages[2].Original)
}

func TestLoadMessages_OptionalColumns(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "messages.csv", "ID,Message\n1,help\n2,food\n")

	messages, err := LoadMessages(path)
	req.NoError(err)
	req.Equal([]domain.Message{{ID: 1, Text: "help"}, {ID: 2, Text: "food"}}, messages)
}

func TestLoadMessages_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"Missing message column", "id,genre\n1,direct\n", errors.ErrMissingColumn},
		{"Missing id column", "message,genre\nhelp,direct\n", errors.ErrMissingColumn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadMessages(writeFile(t, "messages.csv", tt.content))
			require.ErrorIs(t, err, tt.target)
		})
	}

	t.Run("Invalid id", func(t *testing.T) {
		_, err := LoadMessages(writeFile(t, "messages.csv", "id,message\nabc,help\n"))
		require.ErrorContains(t, err, "invalid id")
	})

	t.Run("Binary input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "messages.csv")
		require.NoError(t, os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}, 0o600))
		_, err := LoadMessages(path)
		require.ErrorIs(t, err, errors.ErrUnsupportedInput)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := LoadMessages(filepath.Join(t.TempDir(), "nope.csv"))
		require.Error(t, err)
	})
}

func TestLoadCategories(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "categories.csv",
		"id,categories\n"+
			"2,related-1;request-0;offer-0\n"+
			"7,related-1;request-0;offer-0\n")

	records, err := LoadCategories(path)
	req.NoError(err)
	req.Equal([]domain.CategoryRecord{
		{ID: 2, Encoded: "related-1;request-0;offer-0"},
		{ID: 7, Encoded: "related-1;request-0;offer-0"},
	}, records)

	_, err = LoadCategories(writeFile(t, "categories.csv", "id,labels\n2,related-1\n"))
	req.ErrorIs(err, errors.ErrMissingColumn)
}

func TestMerge(t *testing.T) {
	req := require.New(t)
	messages := []domain.Message{
		{ID: 1, Text: "first"},
		{ID: 2, Text: "second"},
		{ID: 3, Text: "no categories"},
	}
	categories := []domain.CategoryRecord{
		{ID: 2, Encoded: "related-1"},
		{ID: 1, Encoded: "related-0"},
		{ID: 2, Encoded: "related-0"},
		{ID: 9, Encoded: "related-1"},
	}

	merged := Merge(messages, categories)
	req.Equal([]domain.MergedRecord{
		{Message: messages[0], Categories: "related-0"},
		{Message: messages[1], Categories: "related-1"},
		{Message: messages[1], Categories: "related-0"},
	}, merged)
}
