package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ayamprima/flockcore/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type logRepository struct {
	db *DB
}

func NewLogRepository(db *DB) *logRepository {
	return &logRepository{db: db}
}

const logColumns = `
	id, flock_id, log_date,
	mort_male_prod, mort_female_prod, cull_male_prod, cull_female_prod,
	mort_male_hosp, mort_female_hosp, cull_male_hosp, cull_female_hosp,
	moved_male_to_hosp, moved_female_to_hosp, moved_male_to_prod, moved_female_to_prod,
	feed_program, feed_male_grams, feed_female_grams, feed_male_kg, feed_female_kg,
	feed_code_male, feed_code_female,
	eggs_collected, cull_egg_jumbo, cull_egg_small, cull_egg_crack, cull_egg_abnormal,
	egg_weight,
	body_weight_male, body_weight_female, uniformity_male, uniformity_female,
	weighing_day, std_bw_male, std_bw_female,
	water_morning, water_noon, water_evening, water_intake,
	light_on_minute, light_off_minute,
	notes, photo_path, flushing,
	created_at, updated_at
`

func (r *logRepository) GetLogs(ctx context.Context, flockID string) ([]domain.DailyLog, error) {
	query := `SELECT ` + logColumns + ` FROM daily_logs WHERE flock_id = $1 ORDER BY log_date`

	var logs []domain.DailyLog
	if err := sqlx.SelectContext(ctx, r.db, &logs, query, flockID); err != nil {
		return nil, fmt.Errorf("failed to get daily logs: %w", err)
	}

	if err := r.attachPartitions(ctx, logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *logRepository) GetLogsMany(ctx context.Context, flockIDs []string) (map[string][]domain.DailyLog, error) {
	if len(flockIDs) == 0 {
		return map[string][]domain.DailyLog{}, nil
	}

	query := `SELECT ` + logColumns + ` FROM daily_logs
		WHERE flock_id = ANY($1) ORDER BY flock_id, log_date`

	var logs []domain.DailyLog
	if err := sqlx.SelectContext(ctx, r.db, &logs, query, pq.Array(flockIDs)); err != nil {
		return nil, fmt.Errorf("failed to get daily logs: %w", err)
	}

	if err := r.attachPartitions(ctx, logs); err != nil {
		return nil, err
	}

	byFlock := make(map[string][]domain.DailyLog, len(flockIDs))
	for _, l := range logs {
		byFlock[l.FlockID] = append(byFlock[l.FlockID], l)
	}
	return byFlock, nil
}

func (r *logRepository) attachPartitions(ctx context.Context, logs []domain.DailyLog) error {
	if len(logs) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(logs))
	index := make(map[int64]int, len(logs))
	for i := range logs {
		ids = append(ids, logs[i].ID)
		index[logs[i].ID] = i
	}

	query := `SELECT id, log_id, name, body_weight, uniformity
		FROM partition_weights WHERE log_id = ANY($1) ORDER BY log_id, name`

	var parts []domain.PartitionWeight
	if err := sqlx.SelectContext(ctx, r.db, &parts, query, pq.Array(ids)); err != nil {
		return fmt.Errorf("failed to get partition weights: %w", err)
	}

	for _, p := range parts {
		if i, ok := index[p.LogID]; ok {
			logs[i].Partitions = append(logs[i].Partitions, p)
		}
	}
	return nil
}

// UpsertLog writes the single observation for (flock, date). Partition
// weights are replaced wholesale inside the same transaction so a re-submit
// never leaves samples from the previous version behind.
func (r *logRepository) UpsertLog(ctx context.Context, l *domain.DailyLog) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO daily_logs (
				flock_id, log_date,
				mort_male_prod, mort_female_prod, cull_male_prod, cull_female_prod,
				mort_male_hosp, mort_female_hosp, cull_male_hosp, cull_female_hosp,
				moved_male_to_hosp, moved_female_to_hosp, moved_male_to_prod, moved_female_to_prod,
				feed_program, feed_male_grams, feed_female_grams, feed_male_kg, feed_female_kg,
				feed_code_male, feed_code_female,
				eggs_collected, cull_egg_jumbo, cull_egg_small, cull_egg_crack, cull_egg_abnormal,
				egg_weight,
				body_weight_male, body_weight_female, uniformity_male, uniformity_female,
				weighing_day, std_bw_male, std_bw_female,
				water_morning, water_noon, water_evening, water_intake,
				light_on_minute, light_off_minute,
				notes, photo_path, flushing, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
				$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
				$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
				$31, $32, $33, $34, $35, $36, $37, $38, $39, $40,
				$41, $42, $43, NOW()
			)
			ON CONFLICT (flock_id, log_date)
			DO UPDATE SET
				mort_male_prod = EXCLUDED.mort_male_prod,
				mort_female_prod = EXCLUDED.mort_female_prod,
				cull_male_prod = EXCLUDED.cull_male_prod,
				cull_female_prod = EXCLUDED.cull_female_prod,
				mort_male_hosp = EXCLUDED.mort_male_hosp,
				mort_female_hosp = EXCLUDED.mort_female_hosp,
				cull_male_hosp = EXCLUDED.cull_male_hosp,
				cull_female_hosp = EXCLUDED.cull_female_hosp,
				moved_male_to_hosp = EXCLUDED.moved_male_to_hosp,
				moved_female_to_hosp = EXCLUDED.moved_female_to_hosp,
				moved_male_to_prod = EXCLUDED.moved_male_to_prod,
				moved_female_to_prod = EXCLUDED.moved_female_to_prod,
				feed_program = EXCLUDED.feed_program,
				feed_male_grams = EXCLUDED.feed_male_grams,
				feed_female_grams = EXCLUDED.feed_female_grams,
				feed_male_kg = EXCLUDED.feed_male_kg,
				feed_female_kg = EXCLUDED.feed_female_kg,
				feed_code_male = EXCLUDED.feed_code_male,
				feed_code_female = EXCLUDED.feed_code_female,
				eggs_collected = EXCLUDED.eggs_collected,
				cull_egg_jumbo = EXCLUDED.cull_egg_jumbo,
				cull_egg_small = EXCLUDED.cull_egg_small,
				cull_egg_crack = EXCLUDED.cull_egg_crack,
				cull_egg_abnormal = EXCLUDED.cull_egg_abnormal,
				egg_weight = EXCLUDED.egg_weight,
				body_weight_male = EXCLUDED.body_weight_male,
				body_weight_female = EXCLUDED.body_weight_female,
				uniformity_male = EXCLUDED.uniformity_male,
				uniformity_female = EXCLUDED.uniformity_female,
				weighing_day = EXCLUDED.weighing_day,
				std_bw_male = EXCLUDED.std_bw_male,
				std_bw_female = EXCLUDED.std_bw_female,
				water_morning = EXCLUDED.water_morning,
				water_noon = EXCLUDED.water_noon,
				water_evening = EXCLUDED.water_evening,
				water_intake = EXCLUDED.water_intake,
				light_on_minute = EXCLUDED.light_on_minute,
				light_off_minute = EXCLUDED.light_off_minute,
				notes = EXCLUDED.notes,
				photo_path = EXCLUDED.photo_path,
				flushing = EXCLUDED.flushing,
				updated_at = NOW()
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query,
			l.FlockID, l.Date,
			l.MortMaleProd, l.MortFemaleProd, l.CullMaleProd, l.CullFemaleProd,
			l.MortMaleHosp, l.MortFemaleHosp, l.CullMaleHosp, l.CullFemaleHosp,
			l.MovedMaleToHosp, l.MovedFemaleToHosp, l.MovedMaleToProd, l.MovedFemaleToProd,
			l.FeedProgram, l.FeedMaleGrams, l.FeedFemaleGrams, l.FeedMaleKg, l.FeedFemaleKg,
			l.FeedCodeMale, l.FeedCodeFemale,
			l.EggsCollected, l.CullEggJumbo, l.CullEggSmall, l.CullEggCrack, l.CullEggAbnormal,
			l.EggWeight,
			l.BodyWeightMale, l.BodyWeightFemale, l.UniformityMale, l.UniformityFemale,
			l.WeighingDay, l.StdBWMale, l.StdBWFemale,
			l.WaterMorning, l.WaterNoon, l.WaterEvening, l.WaterIntake,
			l.LightOnMinute, l.LightOffMinute,
			l.Notes, l.PhotoPath, l.Flushing,
		).Scan(&l.ID)
		if err != nil {
			return fmt.Errorf("failed to upsert daily log: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM partition_weights WHERE log_id = $1`, l.ID); err != nil {
			return fmt.Errorf("failed to clear partition weights: %w", err)
		}

		if len(l.Partitions) == 0 {
			return nil
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO partition_weights (log_id, name, body_weight, uniformity)
			VALUES ($1, $2, $3, $4)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare partition insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range l.Partitions {
			if !domain.ValidPartitionName(p.Name) {
				return fmt.Errorf("invalid partition name %q", p.Name)
			}
			if _, err := stmt.ExecContext(ctx, l.ID, p.Name, p.BodyWeight, p.Uniformity); err != nil {
				return fmt.Errorf("failed to insert partition weight: %w", err)
			}
		}
		return nil
	})
}
