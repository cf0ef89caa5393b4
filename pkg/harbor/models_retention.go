package harbor

import (
	"github.com/go-openapi/spec"
)

// RetentionSelector filters repositories or tags a retention rule applies to.
type RetentionSelector struct {
	Kind       string `json:"kind,omitempty"`
	Decoration string `json:"decoration,omitempty"`
	Pattern    string `json:"pattern,omitempty"`
	Extras     string `json:"extras,omitempty"`
}

// RetentionRule is one rule of a retention policy.
type RetentionRule struct {
	ID             int64                          `json:"id,omitempty"`
	Priority       int64                          `json:"priority,omitempty"`
	Disabled       bool                           `json:"disabled,omitempty"`
	Action         string                         `json:"action,omitempty"`
	Template       string                         `json:"template,omitempty"`
	Params         map[string]any                 `json:"params,omitempty"`
	TagSelectors   []RetentionSelector            `json:"tag_selectors,omitempty"`
	ScopeSelectors map[string][]RetentionSelector `json:"scope_selectors,omitempty"`
}

// RetentionRuleTrigger decides when a retention policy runs.
type RetentionRuleTrigger struct {
	Kind       string         `json:"kind,omitempty"`
	Settings   map[string]any `json:"settings,omitempty"`
	References map[string]any `json:"references,omitempty"`
}

// RetentionPolicyScope binds a policy to a project.
type RetentionPolicyScope struct {
	Level string `json:"level,omitempty"`
	Ref   int64  `json:"ref,omitempty"`
}

// RetentionPolicy is a tag retention policy.
type RetentionPolicy struct {
	ID        int64                 `json:"id,omitempty"`
	Algorithm string                `json:"algorithm,omitempty"`
	Rules     []RetentionRule       `json:"rules,omitempty"`
	Trigger   *RetentionRuleTrigger `json:"trigger,omitempty"`
	Scope     *RetentionPolicyScope `json:"scope,omitempty"`
}

// RetentionExecution is one run of a retention policy.
type RetentionExecution struct {
	ID        int64  `json:"id,omitempty"`
	PolicyID  int64  `json:"policy_id,omitempty"`
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Status    string `json:"status,omitempty"`
	Trigger   string `json:"trigger,omitempty"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

// RetentionExecutionTask is the per-repository task of an execution.
type RetentionExecutionTask struct {
	ID             int64  `json:"id,omitempty"`
	ExecutionID    int64  `json:"execution_id,omitempty"`
	Repository     string `json:"repository,omitempty"`
	JobID          string `json:"job_id,omitempty"`
	Status         string `json:"status,omitempty"`
	StatusCode     int64  `json:"status_code,omitempty"`
	StatusRevision int64  `json:"status_revision,omitempty"`
	StartTime      string `json:"start_time,omitempty"`
	EndTime        string `json:"end_time,omitempty"`
	Total          int64  `json:"total,omitempty"`
	Retained       int64  `json:"retained,omitempty"`
}

// RetentionRuleParamMetadata describes one parameter of a rule template.
type RetentionRuleParamMetadata struct {
	Type     string `json:"type,omitempty"`
	Unit     string `json:"unit,omitempty"`
	Required bool   `json:"required,omitempty"`
}

// RetentionRuleMetadata describes a rule template.
type RetentionRuleMetadata struct {
	RuleTemplate string                       `json:"rule_template,omitempty"`
	DisplayText  string                       `json:"display_text,omitempty"`
	Action       string                       `json:"action,omitempty"`
	Params       []RetentionRuleParamMetadata `json:"params,omitempty"`
}

// RetentionSelectorMetadata describes a selector kind.
type RetentionSelectorMetadata struct {
	DisplayText string   `json:"display_text,omitempty"`
	Kind        string   `json:"kind,omitempty"`
	Decorations []string `json:"decorations,omitempty"`
}

// RetentionMetadata lists the templates and selectors retention rules can use.
type RetentionMetadata struct {
	Templates      []RetentionRuleMetadata     `json:"templates,omitempty"`
	ScopeSelectors []RetentionSelectorMetadata `json:"scope_selectors,omitempty"`
	TagSelectors   []RetentionSelectorMetadata `json:"tag_selectors,omitempty"`
}

var (
	retentionSelectorSchema = object(nil, props{
		"kind":       str(),
		"decoration": str(),
		"pattern":    str(),
		"extras":     str(),
	})

	retentionRuleSchema = object(nil, props{
		"id":              integer(),
		"priority":        integer(),
		"disabled":        boolean(),
		"action":          str(),
		"template":        str(),
		"params":          freeForm(),
		"tag_selectors":   arrayOf(retentionSelectorSchema),
		"scope_selectors": mapOf(arrayOf(retentionSelectorSchema)),
	})

	retentionRuleTriggerSchema = object(nil, props{
		"kind":       str(),
		"settings":   freeForm(),
		"references": freeForm(),
	})

	retentionPolicyScopeSchema = object(nil, props{
		"level": str(),
		"ref":   integer(),
	})

	retentionPolicySchema = object(nil, props{
		"id":        integer(),
		"algorithm": str(),
		"rules":     arrayOf(retentionRuleSchema),
		"trigger":   retentionRuleTriggerSchema,
		"scope":     retentionPolicyScopeSchema,
	})

	retentionExecutionSchema = object(nil, props{
		"id":         integer(),
		"policy_id":  integer(),
		"start_time": str(),
		"end_time":   str(),
		"status":     str(),
		"trigger":    str(),
		"dry_run":    boolean(),
	})

	retentionExecutionTaskSchema = object(nil, props{
		"id":              integer(),
		"execution_id":    integer(),
		"repository":      str(),
		"job_id":          str(),
		"status":          str(),
		"status_code":     integer(),
		"status_revision": integer(),
		"start_time":      str(),
		"end_time":        str(),
		"total":           integer(),
		"retained":        integer(),
	})

	retentionRuleParamMetadataSchema = object(nil, props{
		"type":     str(),
		"unit":     str(),
		"required": boolean(),
	})

	retentionRuleMetadataSchema = object(nil, props{
		"rule_template": str(),
		"display_text":  str(),
		"action":        str(),
		"params":        arrayOf(retentionRuleParamMetadataSchema),
	})

	retentionSelectorMetadataSchema = object(nil, props{
		"display_text": str(),
		"kind":         str(),
		"decorations":  arrayOf(str()),
	})

	retentionMetadataSchema = object(nil, props{
		"templates":       arrayOf(retentionRuleMetadataSchema),
		"scope_selectors": arrayOf(retentionSelectorMetadataSchema),
		"tag_selectors":   arrayOf(retentionSelectorMetadataSchema),
	})
)

// Schema implements Model.
func (*RetentionPolicy) Schema() *spec.Schema { return retentionPolicySchema }

// Schema implements Model.
func (*RetentionExecution) Schema() *spec.Schema { return retentionExecutionSchema }

// Schema implements Model.
func (*RetentionExecutionTask) Schema() *spec.Schema { return retentionExecutionTaskSchema }

// Schema implements Model.
func (*RetentionMetadata) Schema() *spec.Schema { return retentionMetadataSchema }
