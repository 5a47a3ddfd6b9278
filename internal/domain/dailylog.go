package domain

import "time"

// FeedProgram names the feeding schedule applied on a given day. The program
// determines the multiplier used when converting grams-per-bird to total kg:
// a skip-a-day flock gets a double ration on feeding days.
type FeedProgram string

const (
	FeedFull    FeedProgram = "full-feed"
	FeedSkipDay FeedProgram = "skip-a-day"
	FeedTwoOne  FeedProgram = "2/1"
)

// Multiplier returns the ration multiplier for the program. Unknown programs
// fall back to 1.
func (p FeedProgram) Multiplier() float64 {
	switch p {
	case FeedSkipDay:
		return 2
	case FeedTwoOne:
		return 1.5
	default:
		return 1
	}
}

// DailyLog is the single observation record for one flock and one date.
// Counts are non-negative; movement channels are split by pen
// (production/hospital) and sex.
type DailyLog struct {
	ID      int64     `json:"id" db:"id"`
	FlockID string    `json:"flock_id" db:"flock_id"`
	Date    time.Time `json:"date" db:"log_date"`

	MortMaleProd   int `json:"mort_male_prod" db:"mort_male_prod"`
	MortFemaleProd int `json:"mort_female_prod" db:"mort_female_prod"`
	CullMaleProd   int `json:"cull_male_prod" db:"cull_male_prod"`
	CullFemaleProd int `json:"cull_female_prod" db:"cull_female_prod"`
	MortMaleHosp   int `json:"mort_male_hosp" db:"mort_male_hosp"`
	MortFemaleHosp int `json:"mort_female_hosp" db:"mort_female_hosp"`
	CullMaleHosp   int `json:"cull_male_hosp" db:"cull_male_hosp"`
	CullFemaleHosp int `json:"cull_female_hosp" db:"cull_female_hosp"`

	MovedMaleToHosp   int `json:"moved_male_to_hosp" db:"moved_male_to_hosp"`
	MovedFemaleToHosp int `json:"moved_female_to_hosp" db:"moved_female_to_hosp"`
	MovedMaleToProd   int `json:"moved_male_to_prod" db:"moved_male_to_prod"`
	MovedFemaleToProd int `json:"moved_female_to_prod" db:"moved_female_to_prod"`

	FeedProgram     FeedProgram `json:"feed_program" db:"feed_program"`
	FeedMaleGrams   float64     `json:"feed_male_grams" db:"feed_male_grams"`
	FeedFemaleGrams float64     `json:"feed_female_grams" db:"feed_female_grams"`
	FeedMaleKg      float64     `json:"feed_male_kg" db:"feed_male_kg"`
	FeedFemaleKg    float64     `json:"feed_female_kg" db:"feed_female_kg"`
	FeedCodeMale    *string     `json:"feed_code_male" db:"feed_code_male"`
	FeedCodeFemale  *string     `json:"feed_code_female" db:"feed_code_female"`

	EggsCollected   int     `json:"eggs_collected" db:"eggs_collected"`
	CullEggJumbo    int     `json:"cull_egg_jumbo" db:"cull_egg_jumbo"`
	CullEggSmall    int     `json:"cull_egg_small" db:"cull_egg_small"`
	CullEggCrack    int     `json:"cull_egg_crack" db:"cull_egg_crack"`
	CullEggAbnormal int     `json:"cull_egg_abnormal" db:"cull_egg_abnormal"`
	EggWeight       float64 `json:"egg_weight" db:"egg_weight"`

	BodyWeightMale   float64 `json:"body_weight_male" db:"body_weight_male"`
	BodyWeightFemale float64 `json:"body_weight_female" db:"body_weight_female"`
	UniformityMale   float64 `json:"uniformity_male" db:"uniformity_male"`
	UniformityFemale float64 `json:"uniformity_female" db:"uniformity_female"`
	WeighingDay      bool    `json:"weighing_day" db:"weighing_day"`
	StdBWMale        *float64 `json:"std_bw_male" db:"std_bw_male"`
	StdBWFemale      *float64 `json:"std_bw_female" db:"std_bw_female"`

	// Partition samples are replaced wholesale on every log update during
	// rearing and ignored during production.
	Partitions []PartitionWeight `json:"partitions" db:"-"`

	WaterMorning float64 `json:"water_morning" db:"water_morning"`
	WaterNoon    float64 `json:"water_noon" db:"water_noon"`
	WaterEvening float64 `json:"water_evening" db:"water_evening"`
	// WaterIntake is the computed 24-hour intake in litres.
	WaterIntake float64 `json:"water_intake" db:"water_intake"`

	// Light schedule as minute-of-day; "HH:MM" only at the boundary.
	LightOnMinute  int `json:"light_on_minute" db:"light_on_minute"`
	LightOffMinute int `json:"light_off_minute" db:"light_off_minute"`

	Notes     string `json:"notes" db:"notes"`
	PhotoPath string `json:"photo_path" db:"photo_path"`
	Flushing  bool   `json:"flushing" db:"flushing"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// MortalityMale returns the male deaths across both pens.
func (l *DailyLog) MortalityMale() int { return l.MortMaleProd + l.MortMaleHosp }

// MortalityFemale returns the female deaths across both pens.
func (l *DailyLog) MortalityFemale() int { return l.MortFemaleProd + l.MortFemaleHosp }

// CullsMale returns the male culls across both pens.
func (l *DailyLog) CullsMale() int { return l.CullMaleProd + l.CullMaleHosp }

// CullsFemale returns the female culls across both pens.
func (l *DailyLog) CullsFemale() int { return l.CullFemaleProd + l.CullFemaleHosp }

// CullEggTotal returns the sum of the cull-egg subcategories.
func (l *DailyLog) CullEggTotal() int {
	return l.CullEggJumbo + l.CullEggSmall + l.CullEggCrack + l.CullEggAbnormal
}

// HatchEggs returns the eggs suitable for the hatchery: collected minus culls.
// Never negative.
func (l *DailyLog) HatchEggs() int {
	n := l.EggsCollected - l.CullEggTotal()
	if n < 0 {
		return 0
	}
	return n
}
