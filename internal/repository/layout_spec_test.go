package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func validSpec() *LayoutSpec {
	return &LayoutSpec{
		Name:  "Main Hall",
		Stage: &StageSpec{Name: "Stage", Position: "top", Shape: "rect", Width: 300, Height: 60},
		Sections: []SectionSpec{{
			Name: "A", Type: "seated",
			X: fptr(0), Y: fptr(100), Width: fptr(400), Height: fptr(200),
			Rows: []RowSpec{{
				Title: "A", NumberOfSeats: 2,
				Seats: []SeatSpec{
					{Number: 1, Label: "A1", X: fptr(10), Y: fptr(110)},
					{Number: 2, Label: "A2", X: fptr(40), Y: fptr(110)},
				},
			}},
		}},
	}
}

func TestLayoutSpecValidate(t *testing.T) {
	t.Run("valid spec passes", func(t *testing.T) {
		require.NoError(t, validSpec().Validate())
	})

	t.Run("blank name", func(t *testing.T) {
		spec := validSpec()
		spec.Name = "  "
		err := spec.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "name", verr.Field)
	})

	t.Run("section missing geometry", func(t *testing.T) {
		spec := validSpec()
		spec.Sections[0].Width = nil
		err := spec.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "sections[0].width", verr.Field)
	})

	t.Run("row missing title", func(t *testing.T) {
		spec := validSpec()
		spec.Sections[0].Rows[0].Title = ""
		err := spec.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "sections[0].rows[0].title", verr.Field)
	})

	t.Run("seat missing coordinate names full path", func(t *testing.T) {
		spec := validSpec()
		spec.Sections[0].Rows[0].Seats[1].Y = nil
		err := spec.Validate()
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "sections[0].rows[0].seats[1].y", verr.Field)
		require.True(t, IsValidation(err))
	})
}

func TestLayoutSpecCounts(t *testing.T) {
	spec := validSpec()
	spec.Sections = append(spec.Sections, SectionSpec{
		Name: "B", Type: "standing",
		X: fptr(0), Y: fptr(400), Width: fptr(400), Height: fptr(100),
		Rows: []RowSpec{
			{Title: "B1", NumberOfSeats: 99}, // declared count is ignored
			{Title: "B2", Seats: []SeatSpec{{Number: 1, Label: "B2-1", X: fptr(0), Y: fptr(0)}}},
		},
	})

	secs, rows, seats := spec.counts()
	require.Equal(t, uint32(2), secs)
	require.Equal(t, uint32(3), rows)
	require.Equal(t, uint32(3), seats)
}
