package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seatforge/seatmap-service/internal/model"
	"github.com/seatforge/seatmap-service/internal/repository"
)

func TestLayoutResponseWireFormat(t *testing.T) {
	details := &repository.LayoutDetails{
		Layout: model.Layout{ID: 1, Name: "Main Hall", TotalSections: 1, TotalRows: 1, TotalSeats: 1},
		Stage:  &model.Stage{ID: 5, LayoutID: 1, Name: "Stage", Position: "top", Shape: "rect"},
		Sections: []repository.SectionDetails{{
			Section: model.Section{ID: 10, LayoutID: 1, Name: "A", Type: "seated"},
			Rows: []repository.RowDetails{{
				Row: model.Row{ID: 100, SectionID: 10, Title: "A", NumberOfSeats: 1},
				Seats: []model.Seat{
					{ID: 1000, RowID: 100, SectionID: 10, Number: 1, Label: "A1", Status: model.SeatDisabled},
				},
			}},
		}},
	}

	resp := toLayoutResp(details)
	require.Equal(t, "layout_1", resp.ID)
	require.Equal(t, "section_10", resp.Sections[0].ID)
	require.Equal(t, "row_100", resp.Sections[0].Rows[0].ID)

	seat := resp.Sections[0].Rows[0].Seats[0]
	require.Equal(t, "seat_1000", seat.ID)
	require.Equal(t, "disabled", seat.Status)

	b, err := json.Marshal(resp)
	require.NoError(t, err)
	body := string(b)
	require.Contains(t, body, `"id":"layout_1"`)
	require.Contains(t, body, `"venue_id"`)
	require.Contains(t, body, `"numberOfSeats"`)
	require.Contains(t, body, `"ticketCategory"`)
	// No Go-cased field names may leak onto the wire.
	require.NotContains(t, body, `"ID"`)
	require.NotContains(t, body, `"VenueID"`)
	require.NotContains(t, body, `"Layout"`)
}

func TestLayoutResponseEmptySections(t *testing.T) {
	resp := toLayoutResp(&repository.LayoutDetails{Layout: model.Layout{ID: 2, Name: "Bare"}})
	require.NotNil(t, resp.Sections)
	require.Empty(t, resp.Sections)
	require.Nil(t, resp.Stage)
}
