package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/Tiliavir/trivial-pomodoro-timer/internal/model"
	"github.com/Tiliavir/trivial-pomodoro-timer/internal/timecalc"
)

var gridSizes = []uint{2, 2, 2, 2, 2, 2}

// WritePDF renders the sessions as a table with a total line.
func WritePDF(path string, sessions []model.Session, from, to time.Time) error {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Pomodoro Report", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("%s - %s", from.Format("2006-01-02"), to.Format("2006-01-02")), props.Text{
					Top:   3,
					Style: consts.Normal,
					Align: consts.Center,
					Size:  12,
				})
			})
		})
	})

	rows := make([][]string, 0, len(sessions))
	var total float64
	for _, s := range sessions {
		rows = append(rows, Row(s))
		total += s.DurationSeconds
	}

	m.TableList(Header, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: gridSizes,
		},
		Align:                consts.Center,
		AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(20, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total Time: %s  Sessions: %d", timecalc.FormatDuration(total), len(sessions)), props.Text{
				Top:   10,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  12,
			})
		})
	})

	if err := m.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing PDF report: %w", err)
	}
	return nil
}
