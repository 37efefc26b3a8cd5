package stor

import (
	"github.com/pkg/errors"
)

// Both queries left join the grouped counts so rows without children still
// come back, with a count of 0.

const projectSequenceCountsSQL = `
SELECT p.id AS project_id,
       p.name AS project_name,
       p.description AS description,
       COALESCE(d.name, '') AS devicedb_name,
       COALESCE(g.name, '') AS gateware_name,
       COALESCE(sc.sequence_count, 0) AS sequence_count
FROM project p
LEFT JOIN devicedb d ON d.id = p.devicedb_id
LEFT JOIN gateware g ON g.id = d.gateware_id
LEFT JOIN (
    SELECT pl.project_id AS project_id, COUNT(*) AS sequence_count
    FROM sequence s
    JOIN pipeline pl ON pl.id = s.pipeline_id
    GROUP BY pl.project_id
) sc ON sc.project_id = p.id
ORDER BY p.id`

const sequenceMeasurementCountsSQL = `
SELECT s.id AS sequence_id,
       s.name AS sequence_name,
       COALESCE(mc.measurement_count, 0) AS measurement_count
FROM sequence s
JOIN pipeline pl ON pl.id = s.pipeline_id
LEFT JOIN (
    SELECT sequence_id, COUNT(*) AS measurement_count
    FROM measurement
    GROUP BY sequence_id
) mc ON mc.sequence_id = s.id
WHERE pl.project_id = ?
ORDER BY s.id`

// ProjectSequenceCounts returns every project with its device database and
// gateware names and the number of sequences in its pipelines.
func (s *GormObjectStor) ProjectSequenceCounts() ([]ProjectSequenceCount, error) {
	var counts []ProjectSequenceCount
	if err := s.db.Raw(projectSequenceCountsSQL).Scan(&counts).Error; err != nil {
		return nil, errors.Wrap(err, "counting sequences per project")
	}

	return counts, nil
}

// SequenceMeasurementCounts returns every sequence of the project with its
// number of measurements.
func (s *GormObjectStor) SequenceMeasurementCounts(projectID int) ([]SequenceMeasurementCount, error) {
	var counts []SequenceMeasurementCount
	if err := s.db.Raw(sequenceMeasurementCountsSQL, projectID).Scan(&counts).Error; err != nil {
		return nil, errors.Wrapf(err, "counting measurements for project %d", projectID)
	}

	return counts, nil
}
