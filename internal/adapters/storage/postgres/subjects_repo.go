package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"vet-intelligent/internal/domain/diagnosis"
)

// SubjectsRepo lee la tabla animals (dueña: el registro de animales).
// Solo lectura: acá no se escribe nada.
type SubjectsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSubjectsRepo(db *sql.DB) *SubjectsRepo {
	return &SubjectsRepo{db: db, now: time.Now}
}

func (r *SubjectsRepo) Resolve(ctx context.Context, subjectID string) (diagnosis.SubjectRecord, error) {
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return diagnosis.SubjectRecord{}, diagnosis.ErrSubjectNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			especie, raca,
			data_nascimento, idade_aproximada_anos, idade_aproximada_meses,
			peso_kg, observacoes
		FROM animals
		WHERE animal_id = $1
	`, subjectID)

	var (
		species, breed, notes sql.NullString
		birth                 sql.NullTime
		years, months         sql.NullInt32
		weight                sql.NullFloat64
	)
	if err := row.Scan(&species, &breed, &birth, &years, &months, &weight, &notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return diagnosis.SubjectRecord{}, diagnosis.ErrSubjectNotFound
		}
		return diagnosis.SubjectRecord{}, fmt.Errorf("postgres: resolve subject: %w", err)
	}

	return diagnosis.SubjectRecord{
		Species: strings.TrimSpace(species.String),
		Breed:   strings.TrimSpace(breed.String),
		Age:     formatAge(years, months, birth, r.now()),
		Weight:  formatWeight(weight),
		History: strings.TrimSpace(notes.String),
	}, nil
}

// formatAge prioriza la edad aproximada cargada; si no hay, la calcula
// desde data_nascimento. Sin datos => "".
func formatAge(years, months sql.NullInt32, birth sql.NullTime, now time.Time) string {
	y, m := -1, -1
	if years.Valid {
		y = int(years.Int32)
	}
	if months.Valid {
		m = int(months.Int32)
	}

	if y < 0 && m < 0 && birth.Valid {
		total := monthsBetween(birth.Time, now)
		if total < 0 {
			return ""
		}
		y, m = total/12, total%12
	}

	var parts []string
	if y > 0 {
		parts = append(parts, plural(y, "ano", "anos"))
	}
	if m > 0 {
		parts = append(parts, plural(m, "mês", "meses"))
	}
	if len(parts) == 0 {
		if y == 0 || m == 0 {
			return "menos de 1 mês"
		}
		return ""
	}
	return strings.Join(parts, " e ")
}

func monthsBetween(from, to time.Time) int {
	n := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		n--
	}
	return n
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

func formatWeight(w sql.NullFloat64) string {
	if !w.Valid || w.Float64 <= 0 {
		return ""
	}
	if w.Float64 < 1 {
		return strconv.FormatFloat(math.Round(w.Float64*1000), 'f', -1, 64) + " g"
	}
	return strconv.FormatFloat(w.Float64, 'f', -1, 64) + " kg"
}
