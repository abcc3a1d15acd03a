package implementation

import (
	"context"
	"fmt"

	"opx-assistant-be/internal/repository/contract"

	"gorm.io/gorm"
)

// datasetTables whitelists the entity names the analytical queries may
// address. Everything else is refused before touching SQL.
var datasetTables = map[string]bool{
	"companies": true,
	"employees": true,
	"prospects": true,
	"campaigns": true,
	"benefits":  true,
	"products":  true,
	// vectorized-record inventory, used by the all-data summary
	"data_embeddings": true,
}

// datasetColumns whitelists filter, group-by and aggregation columns
// per table.
var datasetColumns = map[string]map[string]bool{
	"companies": {"name": true, "cnpj": true, "sector": true, "city": true, "state": true, "status": true},
	"employees": {"name": true, "cpf": true, "position": true, "salary": true, "company_id": true},
	"prospects": {"name": true, "company_name": true, "status": true, "source": true},
	"campaigns": {"name": true, "channel": true, "status": true, "budget": true},
	"benefits":  {"name": true, "category": true, "provider": true, "monthly_cost": true, "company_id": true},
	"products":  {"name": true, "category": true, "price": true, "active": true},

	"data_embeddings": {"entity_type": true},
}

var datasetAggregations = map[string]bool{
	"avg": true,
	"sum": true,
	"min": true,
	"max": true,
}

var timeGranularities = map[string]bool{
	"day":   true,
	"week":  true,
	"month": true,
	"year":  true,
}

// datasetRelations maps parent entity -> related table -> foreign key,
// for the "X without related Y" query shape.
var datasetRelations = map[string]map[string]string{
	"companies": {
		"employees": "company_id",
		"benefits":  "company_id",
	},
}

type DatasetRepositoryImpl struct {
	db *gorm.DB
}

func NewDatasetRepository(db *gorm.DB) contract.DatasetRepository {
	return &DatasetRepositoryImpl{db: db}
}

func (r *DatasetRepositoryImpl) table(entity string) (string, error) {
	if !datasetTables[entity] {
		return "", fmt.Errorf("unknown entity %q", entity)
	}
	return entity, nil
}

func (r *DatasetRepositoryImpl) applyFilters(query *gorm.DB, table string, filters map[string]interface{}) *gorm.DB {
	allowed := datasetColumns[table]
	for column, value := range filters {
		if !allowed[column] {
			continue
		}
		query = query.Where(fmt.Sprintf("%s = ?", column), value)
	}
	return query
}

func (r *DatasetRepositoryImpl) CountRecords(ctx context.Context, entity string, filters map[string]interface{}) (int64, error) {
	table, err := r.table(entity)
	if err != nil {
		return 0, err
	}

	var count int64
	query := r.db.WithContext(ctx).Table(table).Where("deleted_at IS NULL")
	query = r.applyFilters(query, table, filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DatasetRepositoryImpl) Aggregate(ctx context.Context, entity string, aggregation string, field string, filters map[string]interface{}) (float64, error) {
	table, err := r.table(entity)
	if err != nil {
		return 0, err
	}
	if !datasetAggregations[aggregation] {
		return 0, fmt.Errorf("unsupported aggregation %q", aggregation)
	}
	if !datasetColumns[table][field] {
		return 0, fmt.Errorf("unknown field %q for %s", field, entity)
	}

	var value *float64
	query := r.db.WithContext(ctx).Table(table).
		Select(fmt.Sprintf("%s(%s)", aggregation, field)).
		Where("deleted_at IS NULL")
	query = r.applyFilters(query, table, filters)
	if err := query.Scan(&value).Error; err != nil {
		return 0, err
	}
	if value == nil {
		// aggregate over zero rows
		return 0, nil
	}
	return *value, nil
}

func (r *DatasetRepositoryImpl) GroupCount(ctx context.Context, entity string, groupBy string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	if !datasetColumns[table][groupBy] {
		return nil, fmt.Errorf("unknown group column %q for %s", groupBy, entity)
	}

	var rows []map[string]interface{}
	query := r.db.WithContext(ctx).Table(table).
		Select(fmt.Sprintf("%s, count(*) as count", groupBy)).
		Where("deleted_at IS NULL").
		Group(groupBy).
		Order("count DESC")
	query = r.applyFilters(query, table, filters)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DatasetRepositoryImpl) TimeSeries(ctx context.Context, entity string, granularity string, filters map[string]interface{}) ([]map[string]interface{}, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	if !timeGranularities[granularity] {
		granularity = "month"
	}

	var rows []map[string]interface{}
	query := r.db.WithContext(ctx).Table(table).
		Select(fmt.Sprintf("date_trunc('%s', created_at) as period, count(*) as count", granularity)).
		Where("deleted_at IS NULL").
		Group("period").
		Order("period ASC")
	query = r.applyFilters(query, table, filters)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DatasetRepositoryImpl) ListRecords(ctx context.Context, entity string, filters map[string]interface{}, limit int) ([]map[string]interface{}, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	var rows []map[string]interface{}
	query := r.db.WithContext(ctx).Table(table).
		Where("deleted_at IS NULL").
		Order("created_at DESC").
		Limit(limit)
	query = r.applyFilters(query, table, filters)
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DatasetRepositoryImpl) ListWithoutRelated(ctx context.Context, entity string, related string) ([]map[string]interface{}, error) {
	table, err := r.table(entity)
	if err != nil {
		return nil, err
	}
	foreignKey, ok := datasetRelations[table][related]
	if !ok {
		return nil, fmt.Errorf("no relation from %s to %s", entity, related)
	}

	var rows []map[string]interface{}
	err = r.db.WithContext(ctx).Table(table).
		Select(table+".*").
		Joins(fmt.Sprintf(
			"LEFT JOIN %s ON %s.%s = %s.id AND %s.deleted_at IS NULL",
			related, related, foreignKey, table, related,
		)).
		Where(table+".deleted_at IS NULL").
		Where(related+".id IS NULL").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
