// Package rubric holds the static definition of the research-plan sections:
// their order, titles, guidance text, and placeholder content. It is loaded
// once and treated as immutable configuration.
package rubric

type Subsection struct {
	Title       string
	Instruction string
}

type Section struct {
	ID          string
	Title       string
	Intro       string
	Placeholder string
	Subsections []Subsection
}

// Section ids for the two mutually exclusive choice groups.
const (
	GroupApproach   = "approach"
	GroupDataMethod = "data_method"
)

var approachIDs = []string{"hypothesis", "needsresearch", "exploratoryresearch"}

var dataMethodIDs = []string{"experiment", "existingdata", "theorysimulation"}

// essentialIDs are required in every valid draft regardless of which group
// members were chosen.
var essentialIDs = []string{"question", "audience", "analysis", "process", "abstract"}

var sections = []Section{
	{
		ID:    "question",
		Title: "Research Question",
		Intro: "Every project starts with a question. A good question is specific enough to be answerable and broad enough to matter to someone beyond you.",
		Placeholder: "Research Question: How does [specific variable] affect [specific outcome] in [specific context]?\n\n" +
			"Significance: Answering this matters because [scientific or practical gap it closes].",
		Subsections: []Subsection{
			{Title: "Specificity", Instruction: "State one question, with the key variables and the population or system named explicitly."},
			{Title: "Significance", Instruction: "Explain in one or two sentences why the answer would change what researchers or practitioners do."},
		},
	},
	{
		ID:    "audience",
		Title: "Target Audience",
		Intro: "Name the communities who will read, review, and build on this work. Writing changes a lot depending on who it is for.",
		Placeholder: "Target Audience/Community: [research community 1], [research community 2]\n\n" +
			"Specific researchers or labs: [names of groups who would cite this]",
		Subsections: []Subsection{
			{Title: "Communities", Instruction: "List 1-3 research communities that would care about the result."},
			{Title: "Exemplars", Instruction: "Name specific researchers, labs, or venues that publish on this question."},
		},
	},
	{
		ID:    "hypothesis",
		Title: "Hypothesis-Driven Research",
		Intro: "Use this approach when you have competing explanations and the project is designed to distinguish between them.",
		Placeholder: "Hypothesis 1: [first plausible explanation]\n\n" +
			"Hypothesis 2: [competing explanation]\n\n" +
			"Why distinguishing them matters: [what each outcome would imply]",
		Subsections: []Subsection{
			{Title: "Competing hypotheses", Instruction: "State at least two hypotheses that make different predictions for the same observation."},
			{Title: "Distinguishability", Instruction: "Describe the observation or measurement that would favor one hypothesis over the other."},
		},
	},
	{
		ID:    "needsresearch",
		Title: "Needs-Based Research",
		Intro: "Use this approach when the project is driven by a concrete stakeholder problem rather than a theoretical dispute.",
		Placeholder: "Who needs it: [stakeholder]\n\n" +
			"The need: [problem they cannot currently solve]\n\n" +
			"Current gap: [why existing solutions fall short]",
		Subsections: []Subsection{
			{Title: "Stakeholder", Instruction: "Identify who has the problem and how you know they have it."},
			{Title: "Gap", Instruction: "Explain why existing approaches do not meet the need."},
		},
	},
	{
		ID:    "exploratoryresearch",
		Title: "Exploratory Research",
		Intro: "Use this approach when the goal is to map unknown territory: new phenomena, new datasets, new measurement regimes.",
		Placeholder: "Phenomenon to explore: [what you will look at]\n\n" +
			"Why it is underexplored: [what made this hard or invisible before]\n\n" +
			"What patterns you might find: [possible discoveries]",
		Subsections: []Subsection{
			{Title: "Territory", Instruction: "Describe the space being explored and why it is newly accessible."},
			{Title: "Expected discoveries", Instruction: "Sketch the kinds of patterns that would count as a finding."},
		},
	},
	{
		ID:    "relatedpapers",
		Title: "Related Papers",
		Intro: "List the most relevant prior work so reviewers can see where this project sits.",
		Placeholder: "1. [Author, Year, Title] - [one-line relevance]\n" +
			"2. [Author, Year, Title] - [one-line relevance]\n" +
			"3. [Author, Year, Title] - [one-line relevance]",
		Subsections: []Subsection{
			{Title: "Coverage", Instruction: "Include the closest methodological neighbors and the closest topical neighbors, about five papers."},
		},
	},
	{
		ID:    "experiment",
		Title: "Experiment",
		Intro: "Use this data method when you will collect new data under controlled manipulation.",
		Placeholder: "Key Variables:\n- Independent: [what you manipulate]\n- Dependent: [what you measure]\n\n" +
			"Sample & Size: [who or what, and roughly how many]\n\n" +
			"Procedure: [what happens, step by step]\n\n" +
			"Predicted results: [what each hypothesis predicts]",
		Subsections: []Subsection{
			{Title: "Variables", Instruction: "Name the manipulated and measured variables and any controls."},
			{Title: "Sample", Instruction: "State the population, sample size rationale, and recruitment or sourcing plan."},
			{Title: "Procedure", Instruction: "Describe the protocol so another lab could run it."},
		},
	},
	{
		ID:    "existingdata",
		Title: "Pre-existing Data",
		Intro: "Use this data method when the project analyzes data that already exists.",
		Placeholder: "Dataset: [name, source, access conditions]\n\n" +
			"Why it is suitable: [coverage, size, measured variables]\n\n" +
			"Known limitations: [selection effects, missingness, licensing]",
		Subsections: []Subsection{
			{Title: "Provenance", Instruction: "State where the data comes from, who collected it, and under what terms you may use it."},
			{Title: "Fit", Instruction: "Explain why this dataset can answer the research question, including its known biases."},
		},
	},
	{
		ID:    "theorysimulation",
		Title: "Theory / Simulation",
		Intro: "Use this data method when the contribution is a model or simulation rather than new measurements.",
		Placeholder: "Model/approach: [formalism or simulation framework]\n\n" +
			"Key assumptions: [what the model takes as given]\n\n" +
			"Validation plan: [how outputs will be checked against reality]",
		Subsections: []Subsection{
			{Title: "Formalism", Instruction: "Describe the mathematical or computational framework and why it fits the question."},
			{Title: "Validation", Instruction: "State how model behavior will be compared with known results or data."},
		},
	},
	{
		ID:    "analysis",
		Title: "Analysis Plan",
		Intro: "Decide the analysis before seeing the results. This is where projects most often go wrong.",
		Placeholder: "Data cleaning: [exclusion rules, preprocessing]\n\n" +
			"Primary analysis: [statistical test or model, and why]\n\n" +
			"How the analysis answers the question: [mapping from result to conclusion]",
		Subsections: []Subsection{
			{Title: "Preprocessing", Instruction: "List the cleaning and exclusion rules, fixed in advance."},
			{Title: "Method", Instruction: "Name the statistical or computational method and justify it over alternatives."},
			{Title: "Interpretation", Instruction: "Say what each possible outcome of the analysis would mean for the question."},
		},
	},
	{
		ID:    "process",
		Title: "Process & Skills",
		Intro: "A plan is only as good as the team and timeline behind it.",
		Placeholder: "Skills needed: [methods or tools required]\n\n" +
			"Collaborators: [who, and what they bring]\n\n" +
			"Timeline: [major milestones with rough dates]",
		Subsections: []Subsection{
			{Title: "Skills", Instruction: "List the skills the project needs and which ones still have to be acquired."},
			{Title: "Timeline", Instruction: "Give milestone-level dates from start to submission."},
		},
	},
	{
		ID:    "abstract",
		Title: "Abstract",
		Intro: "Summarize the whole plan in one paragraph a busy reviewer would actually read.",
		Placeholder: "Background: [context and gap]\n" +
			"Objective: [the question]\n" +
			"Methods: [approach and data]\n" +
			"Expected results: [what you anticipate finding]\n" +
			"Significance: [why it matters]",
		Subsections: []Subsection{
			{Title: "Structure", Instruction: "Cover background, objective, methods, expected results, and significance in that order."},
		},
	},
}

// Sections returns the rubric in declared order.
func Sections() []Section {
	return sections
}

func ByID(id string) (Section, bool) {
	for _, s := range sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}

func Placeholder(id string) string {
	s, ok := ByID(id)
	if !ok {
		return ""
	}
	return s.Placeholder
}

func ApproachIDs() []string {
	return approachIDs
}

func DataMethodIDs() []string {
	return dataMethodIDs
}

func EssentialIDs() []string {
	return essentialIDs
}

// GroupOf reports which choice group a section id belongs to, if any.
func GroupOf(id string) (string, bool) {
	for _, g := range approachIDs {
		if g == id {
			return GroupApproach, true
		}
	}
	for _, g := range dataMethodIDs {
		if g == id {
			return GroupDataMethod, true
		}
	}
	return "", false
}
