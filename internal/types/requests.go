package types

type (
	// SubmitRequest is the public application form payload. Personal and
	// project fields are shared across every selected domain; TaskOptions
	// carries the chosen sub-task per domain.
	SubmitRequest struct {
		TaskOptions map[string]string `json:"task_options"`

		Name       string   `json:"name"        validate:"required,min=1,max=200"`
		RollNumber string   `json:"roll_number" validate:"required,rollnumber"`
		Email      string   `json:"email"       validate:"required,min=5,max=100,portalemail"`
		Phone      string   `json:"phone"       validate:"required,min=1,max=20"`
		Domains    []string `json:"domains"     validate:"required,min=1,max=5,dive,recruitmentdomain"`

		ProjectTitle       string `json:"project_title"       validate:"max=1000"`
		ProjectDescription string `json:"project_description" validate:"max=5000"`
		ProjectLink        string `json:"project_link"        validate:"max=1000"`
		GithubLink         string `json:"github_link"         validate:"max=1000"`
		AdditionalLinks    string `json:"additional_links"    validate:"max=5000"`
		TechnologiesUsed   string `json:"technologies_used"   validate:"max=5000"`
		ChallengesFaced    string `json:"challenges_faced"    validate:"max=5000"`
		LearningOutcomes   string `json:"learning_outcomes"   validate:"max=5000"`
		AdditionalComments string `json:"additional_comments" validate:"max=5000"`

		CodeforcesProfile string `json:"codeforces_profile" validate:"max=1000"`
		CodeforcesRating  string `json:"codeforces_rating"  validate:"max=100"`
		LeetcodeProfile   string `json:"leetcode_profile"   validate:"max=1000"`
		LeetcodeRating    string `json:"leetcode_rating"    validate:"max=100"`
	}

	AuthRequest struct {
		Username string `json:"username" validate:"required,max=100"`
		Password string `json:"password" validate:"required,max=200"`
	}
)
