package harbor

import (
	"github.com/go-openapi/spec"
	"github.com/go-openapi/strfmt"
)

// Stats reports the progress of a scan-all job.
type Stats struct {
	Total     int64            `json:"total,omitempty"`
	Completed int64            `json:"completed,omitempty"`
	Metrics   map[string]int64 `json:"metrics,omitempty"`
	Ongoing   bool             `json:"ongoing,omitempty"`
	Trigger   string           `json:"trigger,omitempty"`
}

// ScheduleObj describes when a job runs.
type ScheduleObj struct {
	Type              string           `json:"type,omitempty"`
	Cron              string           `json:"cron,omitempty"`
	NextScheduledTime *strfmt.DateTime `json:"next_scheduled_time,omitempty"`
}

// Schedule is a scheduled system job such as scan-all.
type Schedule struct {
	ID           int64            `json:"id,omitempty"`
	Status       string           `json:"status,omitempty"`
	CreationTime *strfmt.DateTime `json:"creation_time,omitempty"`
	UpdateTime   *strfmt.DateTime `json:"update_time,omitempty"`
	Schedule     *ScheduleObj     `json:"schedule,omitempty"`
	Parameters   map[string]any   `json:"parameters,omitempty"`
}

var (
	statsSchema = object(nil, props{
		"total":     integer(),
		"completed": integer(),
		"metrics":   mapOf(integer()),
		"ongoing":   boolean(),
		"trigger":   str(),
	})

	scheduleObjSchema = object(nil, props{
		"type":                str(),
		"cron":                str(),
		"next_scheduled_time": dateTime(),
	})

	scheduleSchema = object(nil, props{
		"id":            integer(),
		"status":        str(),
		"creation_time": dateTime(),
		"update_time":   dateTime(),
		"schedule":      scheduleObjSchema,
		"parameters":    freeForm(),
	})
)

// Schema implements Model.
func (*Stats) Schema() *spec.Schema { return statsSchema }

// Schema implements Model.
func (*ScheduleObj) Schema() *spec.Schema { return scheduleObjSchema }

// Schema implements Model.
func (*Schedule) Schema() *spec.Schema { return scheduleSchema }
