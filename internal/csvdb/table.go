package csvdb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// ErrDuplicateID 表内已存在相同ID的记录
var ErrDuplicateID = errors.New("duplicate id")

// Record 可存入CSV表的记录，ID为表内唯一标识
type Record interface {
	RecordID() int
}

// Codec 单个实体类型的CSV编解码器
// Header 返回列名（与Encode/Decode的列顺序一致）
// Decode 对无法解析的行返回错误，该行会被跳过并记录日志
type Codec[T Record] interface {
	Header() []string
	Encode(T) []string
	Decode([]string) (T, error)
}

// Table 单实体CSV表：每次操作整体读取、内存变换、整体重写
// 进程内通过读写锁串行化，文件重写走临时文件+rename，崩溃不会截断数据
type Table[T Record] struct {
	path  string
	codec Codec[T]
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewTable 创建CSV表，文件不存在时初始化为只含表头的空表
func NewTable[T Record](path string, codec Codec[T], log *zap.Logger) (*Table[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	t := &Table[T]{
		path:  path,
		codec: codec,
		log:   log,
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("检查数据文件失败: %w", err)
		}
		// 首次使用：写入只含表头的文件
		if err := t.writeAll(nil); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Path 返回底层CSV文件路径（供导出操作使用）
func (t *Table[T]) Path() string {
	return t.path
}

// List 解码并返回所有记录
func (t *Table[T]) List() ([]T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows, _, err := t.load()
	return rows, err
}

// Get 按ID查找记录，不存在时返回false
func (t *Table[T]) Get(id int) (T, bool, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var zero T
	rows, index, err := t.load()
	if err != nil {
		return zero, false, err
	}
	pos, ok := index[id]
	if !ok {
		return zero, false, nil
	}
	return rows[pos], true, nil
}

// Create 追加一条记录，ID已存在时返回ErrDuplicateID
func (t *Table[T]) Create(rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	rows, index, err := t.load()
	if err != nil {
		return zero, err
	}
	if _, exists := index[rec.RecordID()]; exists {
		return zero, fmt.Errorf("id %d: %w", rec.RecordID(), ErrDuplicateID)
	}

	rows = append(rows, rec)
	if err := t.writeAll(rows); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update 整行替换ID对应的记录，允许修改记录自身的ID
// 新ID与其他已有记录冲突时返回ErrDuplicateID（该检查先于目标存在性检查）
// 目标不存在时返回found=false
func (t *Table[T]) Update(id int, rec T) (T, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	rows, index, err := t.load()
	if err != nil {
		return zero, false, err
	}

	if rec.RecordID() != id {
		if _, exists := index[rec.RecordID()]; exists {
			return zero, false, fmt.Errorf("id %d: %w", rec.RecordID(), ErrDuplicateID)
		}
	}

	pos, ok := index[id]
	if !ok {
		return zero, false, nil
	}

	rows[pos] = rec
	if err := t.writeAll(rows); err != nil {
		return zero, false, err
	}
	return rec, true, nil
}

// Delete 删除ID对应的记录，不存在时返回false
func (t *Table[T]) Delete(id int) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows, index, err := t.load()
	if err != nil {
		return false, err
	}
	pos, ok := index[id]
	if !ok {
		return false, nil
	}

	rows = append(rows[:pos], rows[pos+1:]...)
	if err := t.writeAll(rows); err != nil {
		return false, err
	}
	return true, nil
}

// Count 返回数据行数（不含表头，不做解码，坏行也计入）
func (t *Table[T]) Count() (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	raw, err := t.readRaw()
	if err != nil {
		return 0, err
	}
	if len(raw) == 0 {
		return 0, nil
	}
	return len(raw) - 1, nil
}

// EncodedRows 返回表头和全部已解码记录的编码行（供XML/XLSX导出使用）
func (t *Table[T]) EncodedRows() ([]string, [][]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows, _, err := t.load()
	if err != nil {
		return nil, nil, err
	}
	encoded := make([][]string, len(rows))
	for i, rec := range rows {
		encoded[i] = t.codec.Encode(rec)
	}
	return t.codec.Header(), encoded, nil
}

// readRaw 读取文件的原始CSV行（含表头），不做解码
func (t *Table[T]) readRaw() ([][]string, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // 列数不齐的行交给解码器判断
	raw, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取数据文件失败: %w", err)
	}
	return raw, nil
}

// load 读取并解码全部记录，同时构建ID->下标索引
// 解码失败的行记录Warn日志后跳过，不中断整体操作
func (t *Table[T]) load() ([]T, map[int]int, error) {
	raw, err := t.readRaw()
	if err != nil {
		return nil, nil, err
	}

	rows := make([]T, 0, len(raw))
	index := make(map[int]int, len(raw))

	for i, record := range raw {
		if i == 0 {
			if !equalHeader(record, t.codec.Header()) {
				t.log.Warn("CSV表头与预期不一致，按列位置继续解码",
					zap.String("file", t.path),
					zap.Strings("header", record),
				)
			}
			continue
		}

		rec, err := t.codec.Decode(record)
		if err != nil {
			t.log.Warn("CSV行解码失败，已跳过",
				zap.String("file", t.path),
				zap.Int("line", i+1),
				zap.Error(err),
			)
			continue
		}
		index[rec.RecordID()] = len(rows)
		rows = append(rows, rec)
	}

	return rows, index, nil
}

// writeAll 整体重写：先写同目录临时文件再rename覆盖，避免写一半损坏数据
func (t *Table[T]) writeAll(rows []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(t.path), filepath.Base(t.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(t.codec.Header()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("写入表头失败: %w", err)
	}
	for _, rec := range rows {
		if err := writer.Write(t.codec.Encode(rec)); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("写入数据行失败: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("刷新数据失败: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("同步数据失败: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("关闭临时文件失败: %w", err)
	}

	if err := os.Rename(tmpName, t.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("替换数据文件失败: %w", err)
	}
	return nil
}

func equalHeader(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
