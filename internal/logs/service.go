package logs

import (
	"clinic-desk-api/internal/util"
	"encoding/json"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type LogService struct {
	DB *gorm.DB
}

func (ls *LogService) Log(log SystemLog, metadata interface{}) error {
	var meta datatypes.JSON

	// Convert metadata (map/struct) to JSON if provided
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			meta = datatypes.JSON(b)
		}
	}

	newLog := SystemLog{
		Level:          log.Level,
		Service:        log.Service,
		StaffID:        log.StaffID,
		Action:         log.Action,
		Message:        log.Message,
		IdentityNumber: log.IdentityNumber,
		Metadata:       meta,
		CreatedAt:      time.Now(),
	}

	return ls.DB.Create(&newLog).Error
}

func trimmed(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	s := strings.TrimSpace(*p)
	return s, s != ""
}

func (ls *LogService) GetLogs(input LogFilterInput) ([]LogRow, LogAggregates, int64, int, error) {
	if input.Page <= 0 {
		input.Page = 1
	}
	if input.PageSize <= 0 || input.PageSize > 100 {
		input.PageSize = 20
	}

	base := ls.DB.
		Table("logs").
		Select("logs.*, s.firstname as firstname, s.lastname as lastname").
		Joins("LEFT JOIN staff s ON logs.staff_id = s.id")

	// Default: last 30 days if no dates
	if input.StartDate == nil && input.EndDate == nil {
		base = base.Where("logs.created_at >= ?", time.Now().AddDate(0, 0, -30))
	}

	if input.StaffID != nil {
		base = base.Where("logs.staff_id = ?", *input.StaffID)
	}
	if v, ok := trimmed(input.Level); ok {
		base = base.Where("logs.level = ?", strings.ToUpper(v))
	}
	if v, ok := trimmed(input.Service); ok {
		base = base.Where("logs.service = ?", v)
	}
	if v, ok := trimmed(input.Action); ok {
		base = base.Where("logs.action = ?", strings.ToUpper(v))
	}
	if v, ok := trimmed(input.IdentityNumber); ok {
		base = base.Where("logs.identity_number = ?", v)
	}

	created, err := util.ParseDateRange(input.StartDate, input.EndDate)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}
	if created.HasStart {
		base = base.Where("logs.created_at >= ?", created.Start)
	}
	if created.HasEnd {
		base = base.Where("logs.created_at < ?", created.End)
	}

	// LOWER(..) LIKE keeps the search portable between sqlite and postgres
	if v, ok := trimmed(input.Search); ok {
		like := "%" + strings.ToLower(v) + "%"
		base = base.Where(
			`LOWER(logs.level) LIKE ?
			 OR LOWER(logs.service) LIKE ?
			 OR LOWER(logs.action) LIKE ?
			 OR LOWER(logs.message) LIKE ?
			 OR LOWER(COALESCE(logs.identity_number,'')) LIKE ?
			 OR LOWER(COALESCE(s.firstname,'')) LIKE ?
			 OR LOWER(COALESCE(s.lastname,'')) LIKE ?`,
			like, like, like, like, like, like, like,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(input.PageSize)))
	if totalPages == 0 {
		totalPages = 1
	}

	rows := []LogRow{}
	if err := base.
		Session(&gorm.Session{}).
		Order("logs.created_at DESC").
		Order("logs.id DESC").
		Limit(input.PageSize).
		Offset((input.Page - 1) * input.PageSize).
		Scan(&rows).Error; err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	aggs, err := ls.getAggregatesFromBase(base)
	if err != nil {
		return nil, LogAggregates{}, 0, 0, err
	}

	return rows, aggs, total, totalPages, nil
}

func (ls *LogService) getAggregatesFromBase(base *gorm.DB) (LogAggregates, error) {
	aggs := LogAggregates{}
	limit := 12

	// Use derived table so filters are identical
	sub := base.Session(&gorm.Session{}).
		Select("logs.staff_id, logs.action, s.firstname, s.lastname")

	derived := ls.DB.Table("(?) as x", sub)

	// By action
	{
		var out []AggItem
		if err := derived.Session(&gorm.Session{}).
			Select("x.action AS label, COUNT(*) AS count").
			Group("x.action").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}
		aggs.ByAction = make([]AggItem, 0, len(out))
		aggs.ByAction = append(aggs.ByAction, out...)
	}

	// By staff member
	{
		type r struct {
			StaffID   *uint
			Firstname string
			Lastname  string
			Label     string
			Count     int64
		}
		var out []r

		if err := derived.Session(&gorm.Session{}).
			Select(`
				x.staff_id,
				COALESCE(x.firstname,'') AS firstname,
				COALESCE(x.lastname,'') AS lastname,
				CASE
					WHEN (COALESCE(x.firstname,'') = '' AND COALESCE(x.lastname,'') = '')
					THEN 'Unknown'
					ELSE TRIM(COALESCE(x.firstname,'') || ' ' || COALESCE(x.lastname,''))
				END AS label,
				COUNT(*) AS count
			`).
			Group("x.staff_id, firstname, lastname, label").
			Order("count DESC").
			Limit(limit).
			Scan(&out).Error; err != nil {
			return LogAggregates{}, err
		}

		aggs.ByPerson = make([]PersonAggItem, 0, len(out))
		for _, row := range out {
			aggs.ByPerson = append(aggs.ByPerson, PersonAggItem{
				StaffID:   row.StaffID,
				Firstname: row.Firstname,
				Lastname:  row.Lastname,
				Label:     row.Label,
				Count:     row.Count,
			})
		}
	}

	return aggs, nil
}
