package service

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExportSource 可导出的数据源，由各CSV仓储实现
type ExportSource interface {
	Path() string
	EncodedRows() ([]string, [][]string, error)
}

// ExportService 导出服务：打包、哈希与格式转换
// 导出产物写在CSV同目录下，与实体同名，仅扩展名不同
type ExportService struct{}

// NewExportService 创建ExportService实例
func NewExportService() *ExportService {
	return &ExportService{}
}

// Zip 将数据源的CSV打包为同名zip（归档项为CSV文件名），返回zip路径
func (s *ExportService) Zip(src ExportSource) (string, error) {
	csvPath := src.Path()
	zipPath := siblingPath(csvPath, ".zip")

	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("创建zip文件失败: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	entry, err := zw.Create(filepath.Base(csvPath))
	if err != nil {
		zw.Close()
		return "", fmt.Errorf("创建zip归档项失败: %w", err)
	}
	in, err := os.Open(csvPath)
	if err != nil {
		zw.Close()
		return "", fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer in.Close()
	if _, err := io.Copy(entry, in); err != nil {
		zw.Close()
		return "", fmt.Errorf("写入zip归档项失败: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("关闭zip文件失败: %w", err)
	}
	return zipPath, nil
}

// Hash 计算CSV当前内容的SHA-256，返回文件名与小写十六进制摘要
func (s *ExportService) Hash(src ExportSource) (string, string, error) {
	csvPath := src.Path()
	f, err := os.Open(csvPath)
	if err != nil {
		return "", "", fmt.Errorf("打开数据文件失败: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", "", fmt.Errorf("读取数据文件失败: %w", err)
	}
	return filepath.Base(csvPath), hex.EncodeToString(h.Sum(nil)), nil
}

// XML 将解码后的记录重新序列化为XML并写到同名xml文件，返回其路径
// 根元素为实体复数名，每条记录一个单数子元素，字段为子元素文本
func (s *ExportService) XML(src ExportSource) (string, error) {
	header, rows, err := src.EncodedRows()
	if err != nil {
		return "", err
	}

	csvPath := src.Path()
	root := entityName(csvPath)
	item := strings.TrimSuffix(root, "s")

	xmlPath := siblingPath(csvPath, ".xml")
	out, err := os.Create(xmlPath)
	if err != nil {
		return "", fmt.Errorf("创建xml文件失败: %w", err)
	}
	defer out.Close()

	if _, err := out.WriteString(xml.Header); err != nil {
		return "", fmt.Errorf("写入xml声明失败: %w", err)
	}

	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	rootStart := xml.StartElement{Name: xml.Name{Local: root}}
	if err := enc.EncodeToken(rootStart); err != nil {
		return "", fmt.Errorf("写入xml失败: %w", err)
	}
	for _, row := range rows {
		itemStart := xml.StartElement{Name: xml.Name{Local: item}}
		if err := enc.EncodeToken(itemStart); err != nil {
			return "", fmt.Errorf("写入xml失败: %w", err)
		}
		for i, field := range header {
			if i >= len(row) {
				break
			}
			fieldStart := xml.StartElement{Name: xml.Name{Local: field}}
			if err := enc.EncodeToken(fieldStart); err != nil {
				return "", fmt.Errorf("写入xml失败: %w", err)
			}
			if err := enc.EncodeToken(xml.CharData(row[i])); err != nil {
				return "", fmt.Errorf("写入xml失败: %w", err)
			}
			if err := enc.EncodeToken(fieldStart.End()); err != nil {
				return "", fmt.Errorf("写入xml失败: %w", err)
			}
		}
		if err := enc.EncodeToken(itemStart.End()); err != nil {
			return "", fmt.Errorf("写入xml失败: %w", err)
		}
	}
	if err := enc.EncodeToken(rootStart.End()); err != nil {
		return "", fmt.Errorf("写入xml失败: %w", err)
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("刷新xml失败: %w", err)
	}
	return xmlPath, nil
}

// XLSX 将解码后的记录导出为xlsx（工作表以实体命名，首行为表头），返回其路径
func (s *ExportService) XLSX(src ExportSource) (string, error) {
	header, rows, err := src.EncodedRows()
	if err != nil {
		return "", err
	}

	csvPath := src.Path()
	sheet := entityName(csvPath)

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return "", fmt.Errorf("设置工作表名失败: %w", err)
	}

	if err := setStringRow(f, sheet, 1, header); err != nil {
		return "", err
	}
	for i, row := range rows {
		if err := setStringRow(f, sheet, i+2, row); err != nil {
			return "", err
		}
	}

	xlsxPath := siblingPath(csvPath, ".xlsx")
	if err := f.SaveAs(xlsxPath); err != nil {
		return "", fmt.Errorf("保存xlsx文件失败: %w", err)
	}
	return xlsxPath, nil
}

// setStringRow 写入一整行字符串单元格，row 从1开始
func setStringRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("计算单元格坐标失败: %w", err)
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("写入xlsx行失败: %w", err)
	}
	return nil
}

// entityName CSV路径对应的实体名（文件名去扩展名）
func entityName(csvPath string) string {
	base := filepath.Base(csvPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// siblingPath 同目录下与CSV同名、指定扩展名的文件路径
func siblingPath(csvPath string, ext string) string {
	base := strings.TrimSuffix(csvPath, filepath.Ext(csvPath))
	return base + ext
}
