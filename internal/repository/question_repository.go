package repository

import (
	"errors"

	"bashaway_backend/internal/model"

	"gorm.io/gorm"
)

// listColumns is the listing projection: creator and creator_lock both stay
// server-side.
var listColumns = []string{
	"id", "created_at", "updated_at", "name", "description",
	"constraints", "max_score", "enabled", "attachment",
}

// detailColumns is the single-read projection: the creator stays visible,
// only the lock flag is suppressed.
var detailColumns = append(listColumns[:len(listColumns):len(listColumns)], "creator_id")

// QuestionQuery carries the caller-supplied filter and paging options for
// question listings.
type QuestionQuery struct {
	Name   string
	Search string
	Sort   string
	Page   int
	Limit  int
}

// PageInfo is returned alongside a paginated listing; it is nil when the
// caller did not ask for a page.
type PageInfo struct {
	Page      int
	Limit     int
	TotalDocs int64
}

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// visibilityScope restricts a query to questions the user may see: unlocked
// ones, or locked ones the user created. The same predicate applies to every
// role.
func visibilityScope(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("creator_lock = ? OR (creator_lock = ? AND creator_id = ?)", false, true, userID)
	}
}

// listScope combines the visibility predicate, the enabled gate, and any
// caller-supplied filter into one compound condition.
func listScope(userID uint, query QuestionQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Scopes(visibilityScope(userID)).Where("enabled = ?", true)
		if query.Name != "" {
			db = db.Where("name = ?", query.Name)
		}
		if query.Search != "" {
			db = db.Where("name LIKE ?", "%"+query.Search+"%")
		}
		return db
	}
}

// FindAllQuestions lists enabled questions visible to the user. Without a
// page it returns the plain sorted list; with one it returns the page plus
// totals. Sort defaults to newest first.
func (r *QuestionRepository) FindAllQuestions(userID uint, query QuestionQuery) ([]model.Question, *PageInfo, error) {
	sort := query.Sort
	if sort == "" {
		sort = "created_at DESC"
	}

	var questions []model.Question

	if query.Page == 0 {
		err := r.DB.Model(&model.Question{}).
			Scopes(listScope(userID, query)).
			Select(listColumns).
			Order(sort).
			Find(&questions).Error
		return questions, nil, err
	}

	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	var total int64
	if err := r.DB.Model(&model.Question{}).Scopes(listScope(userID, query)).Count(&total).Error; err != nil {
		return nil, nil, err
	}

	offset := (query.Page - 1) * limit
	err := r.DB.Model(&model.Question{}).
		Scopes(listScope(userID, query)).
		Select(listColumns).
		Order(sort).
		Offset(offset).
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, nil, err
	}

	return questions, &PageInfo{Page: query.Page, Limit: limit, TotalDocs: total}, nil
}

// InsertQuestion persists a new question and fills in the generated id.
func (r *QuestionRepository) InsertQuestion(question *model.Question) error {
	return r.DB.Create(question).Error
}

// FindQuestion returns the first match for the filter, or nil when there is
// none.
func (r *QuestionRepository) FindQuestion(filter map[string]interface{}) (*model.Question, error) {
	var question model.Question
	err := r.DB.Where(filter).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// GetQuestionByID fetches one question by id subject to the visibility
// predicate, returned as a zero-or-one slice. filterFields suppresses the
// creator_lock column while keeping the creator visible.
func (r *QuestionRepository) GetQuestionByID(id uint, userID uint, filterFields bool) ([]model.Question, error) {
	q := r.DB.Model(&model.Question{}).
		Scopes(visibilityScope(userID)).
		Where("id = ?", id)

	if filterFields {
		q = q.Select(detailColumns)
	}

	var questions []model.Question
	err := q.Find(&questions).Error
	return questions, err
}

// GetAllQuestionIDs returns the ids matching the filter, for bulk operations.
func (r *QuestionRepository) GetAllQuestionIDs(filter map[string]interface{}) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Question{}).Where(filter).Pluck("id", &ids).Error
	return ids, err
}

// FindAndUpdateQuestion applies the field updates to the first match and
// returns the post-update row.
func (r *QuestionRepository) FindAndUpdateQuestion(filter map[string]interface{}, data map[string]interface{}) (*model.Question, error) {
	if err := r.DB.Model(&model.Question{}).Where(filter).Updates(data).Error; err != nil {
		return nil, err
	}

	var question model.Question
	if err := r.DB.Where(filter).First(&question).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

// DeleteAQuestion physically removes matching rows and reports how many went
// away. Removal is permanent, so the unique name becomes available again.
func (r *QuestionRepository) DeleteAQuestion(filter map[string]interface{}) (int64, error) {
	result := r.DB.Unscoped().Where(filter).Delete(&model.Question{})
	return result.RowsAffected, result.Error
}

// GetMaxScore reads the max_score of one question. A missing question is an
// explicit error, never a zero value.
func (r *QuestionRepository) GetMaxScore(questionID uint) (int, error) {
	var question model.Question
	err := r.DB.Select("id", "max_score").First(&question, questionID).Error
	if err != nil {
		return 0, err
	}
	return question.MaxScore, nil
}
