package constants

// ==========================
// Roles
// ==========================
const (
	RoleAdmin = "ADMIN"
	RoleJudge = "JUDGE"
)

var AllRoles = []string{RoleAdmin, RoleJudge}

// ==========================
// Competition levels
// ==========================
const (
	LevelCollege        = "COLLEGE"
	LevelSeniorHigh     = "SENIOR_HIGH"
	LevelBasicEducation = "BASIC_EDUCATION"
)

var AllLevels = []string{LevelCollege, LevelSeniorHigh, LevelBasicEducation}

var LevelLabels = map[string]string{
	LevelCollege:        "College",
	LevelSeniorHigh:     "Senior High School",
	LevelBasicEducation: "Basic Education",
}

// ==========================
// Genders
// ==========================
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// ==========================
// Grading status (per candidate, across assigned judges)
// ==========================
const (
	StatusNotGraded = "NOT_GRADED"
	StatusPending   = "PENDING"
	StatusGraded    = "GRADED"
)

// ==========================
// Weighting modes (how a competition turns category scores into a final)
// ==========================
const (
	// Single weighted sum over every criteria (Singing, Flag Twirling).
	ModeFlatWeighted = "FLAT_WEIGHTED"
	// Per-category weighted sums averaged with equal category weight (Pageantry).
	ModeEqualCategoryAverage = "EQUAL_CATEGORY_AVERAGE"
	// Per-category sums combined with each category's configured weight (Lycean Teen Model).
	ModeNamedCategoryWeights = "NAMED_CATEGORY_WEIGHTS"
	// Per-category sums, every category at one fixed weight; the remainder of
	// 100% is scored off-system (Little Lycean Stars).
	ModeFixedCategoryWeight = "FIXED_CATEGORY_WEIGHT"
)

var AllWeightingModes = []string{
	ModeFlatWeighted,
	ModeEqualCategoryAverage,
	ModeNamedCategoryWeights,
	ModeFixedCategoryWeight,
}

// Default score bounds for a new competition. Individual competitions can
// widen these (one legacy flow accepted 0-100).
const (
	DefaultScoreMin = 65
	DefaultScoreMax = 100
)

// Ranking titles for the print sheet, by position in the ranked list.
var RankTitles = []string{"Champion", "1st Runner Up", "2nd Runner Up"}
