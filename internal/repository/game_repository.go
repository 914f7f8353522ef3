package repository

import (
	"strings"

	"record-system/internal/csvdb"
	"record-system/internal/model"
)

// GameFilter 游戏过滤条件
// 零值字段不参与匹配；Available 用指针区分"未传"与"过滤false"
type GameFilter struct {
	Genre     string
	Platform  string
	Available *bool
	YearMin   *int
	YearMax   *int
}

// GameRepository 游戏数据仓储（CSV表）
type GameRepository struct {
	table *csvdb.Table[model.Game]
}

// NewGameRepository 创建GameRepository实例
func NewGameRepository(table *csvdb.Table[model.Game]) *GameRepository {
	return &GameRepository{table: table}
}

// List 列出全部游戏
func (r *GameRepository) List() ([]model.Game, error) {
	return r.table.List()
}

// GetByID 根据ID获取游戏
func (r *GameRepository) GetByID(id int) (model.Game, bool, error) {
	return r.table.Get(id)
}

// Create 新增游戏
func (r *GameRepository) Create(g model.Game) (model.Game, error) {
	return r.table.Create(g)
}

// Update 整行替换指定ID的游戏
func (r *GameRepository) Update(id int, g model.Game) (model.Game, bool, error) {
	return r.table.Update(id, g)
}

// Delete 删除游戏
func (r *GameRepository) Delete(id int) (bool, error) {
	return r.table.Delete(id)
}

// Count 原始数据行数（不含表头）
func (r *GameRepository) Count() (int, error) {
	return r.table.Count()
}

// Path 底层CSV文件路径
func (r *GameRepository) Path() string {
	return r.table.Path()
}

// EncodedRows 表头与编码后的数据行，供导出使用
func (r *GameRepository) EncodedRows() ([]string, [][]string, error) {
	return r.table.EncodedRows()
}

// Filter 按条件过滤游戏（解码行上的内存谓词）
func (r *GameRepository) Filter(f GameFilter) ([]model.Game, error) {
	games, err := r.table.List()
	if err != nil {
		return nil, err
	}
	out := make([]model.Game, 0, len(games))
	for _, g := range games {
		if f.Genre != "" && !strings.EqualFold(g.Genre, f.Genre) {
			continue
		}
		if f.Platform != "" && !strings.EqualFold(g.Platform, f.Platform) {
			continue
		}
		if f.Available != nil && g.Available != *f.Available {
			continue
		}
		if f.YearMin != nil && g.ReleaseYear < *f.YearMin {
			continue
		}
		if f.YearMax != nil && g.ReleaseYear > *f.YearMax {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}
