package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/materials-commons/labdb/pkg/labdb/stor"
	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
)

// ProjectSummary is one project with the number of sequences across all of
// its pipelines.
type ProjectSummary struct {
	ProjectID int    `json:"project_id"`
	Project   string `json:"project"`
	DeviceDB  string `json:"devicedb"`
	Gateware  string `json:"gateware"`
	Sequences int64  `json:"sequences"`
}

type SequenceSummary struct {
	SequenceID   int    `json:"sequence_id"`
	Sequence     string `json:"sequence"`
	Measurements int64  `json:"measurements"`
}

// ProjectDetail is one project with each of its sequences and their
// measurement counts.
type ProjectDetail struct {
	ProjectID   int               `json:"project_id"`
	Project     string            `json:"project"`
	DeviceDB    string            `json:"devicedb"`
	Gateware    string            `json:"gateware"`
	Description string            `json:"description"`
	Sequences   []SequenceSummary `json:"sequences"`
}

// SummaryReport lists every project, including those without sequences.
func SummaryReport(s stor.ObjectStor) ([]ProjectSummary, error) {
	counts, err := s.ProjectSequenceCounts()
	if err != nil {
		return nil, err
	}

	summaries := make([]ProjectSummary, 0, len(counts))
	for _, c := range counts {
		summaries = append(summaries, ProjectSummary{
			ProjectID: c.ProjectID,
			Project:   c.ProjectName,
			DeviceDB:  c.DeviceDBName,
			Gateware:  c.GatewareName,
			Sequences: c.SequenceCount,
		})
	}

	return summaries, nil
}

// DetailedReport lists every project with every sequence under it. Sequences
// without measurements are listed with a count of 0.
func DetailedReport(s stor.ObjectStor) ([]ProjectDetail, error) {
	projects, err := s.ProjectSequenceCounts()
	if err != nil {
		return nil, err
	}

	details := make([]ProjectDetail, 0, len(projects))
	for _, p := range projects {
		counts, err := s.SequenceMeasurementCounts(p.ProjectID)
		if err != nil {
			return nil, err
		}

		detail := ProjectDetail{
			ProjectID:   p.ProjectID,
			Project:     p.ProjectName,
			DeviceDB:    p.DeviceDBName,
			Gateware:    p.GatewareName,
			Description: p.Description,
			Sequences:   make([]SequenceSummary, 0, len(counts)),
		}

		for _, c := range counts {
			detail.Sequences = append(detail.Sequences, SequenceSummary{
				SequenceID:   c.SequenceID,
				Sequence:     c.SequenceName,
				Measurements: c.MeasurementCount,
			})
		}

		details = append(details, detail)
	}

	return details, nil
}

// PrintReport writes the summary, or with detailed set the per project
// sequence tables, to w.
func PrintReport(s stor.ObjectStor, w io.Writer, detailed bool) error {
	if detailed {
		details, err := DetailedReport(s)
		if err != nil {
			return err
		}
		return writeDetailed(w, details)
	}

	summaries, err := SummaryReport(s)
	if err != nil {
		return err
	}

	return writeSummary(w, summaries)
}

func writeSummary(w io.Writer, summaries []ProjectSummary) error {
	table := tablewriter.NewWriter(w)
	defer table.Close()

	table.Header([]string{"Project", "Device Database", "Gateware", "Sequences"})
	for _, s := range summaries {
		if err := table.Append([]string{s.Project, s.DeviceDB, s.Gateware, strconv.FormatInt(s.Sequences, 10)}); err != nil {
			return errors.Wrap(err, "formatting summary")
		}
	}

	return table.Render()
}

func writeDetailed(w io.Writer, details []ProjectDetail) error {
	for i, d := range details {
		if i > 0 {
			fmt.Fprintln(w)
		}

		fmt.Fprintf(w, "Project:     %s\n", d.Project)
		fmt.Fprintf(w, "DeviceDB:    %s\n", d.DeviceDB)
		fmt.Fprintf(w, "Gateware:    %s\n", d.Gateware)
		fmt.Fprintf(w, "Description: %s\n", d.Description)

		table := tablewriter.NewWriter(w)
		table.Header([]string{"Sequence", "Measurements"})
		for _, seq := range d.Sequences {
			if err := table.Append([]string{seq.Sequence, strconv.FormatInt(seq.Measurements, 10)}); err != nil {
				_ = table.Close()
				return errors.Wrapf(err, "formatting project %s", d.Project)
			}
		}

		err := table.Render()
		_ = table.Close()
		if err != nil {
			return err
		}
	}

	return nil
}
