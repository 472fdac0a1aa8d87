package service

import (
	"io"
	"strings"

	"github.com/storefront-next/internal/repository"

	"github.com/tealeg/xlsx"
)

// productExportHeaders 商品导出表头
var productExportHeaders = []string{
	"ID", "Slug", "Name", "Brand", "Category", "Price", "CountInStock",
	"Rating", "NumReviews", "IsActive", "IsFeatured", "Images", "CreatedAt", "UpdatedAt",
}

// ExportService 后台数据导出服务
type ExportService struct {
	productRepo repository.ProductRepository
}

// NewExportService 创建导出服务
func NewExportService(productRepo repository.ProductRepository) *ExportService {
	return &ExportService{productRepo: productRepo}
}

// WriteProductsXLSX 将全部商品写为 xlsx 工作簿
func (s *ExportService) WriteProductsXLSX(w io.Writer) (int, error) {
	products, err := s.productRepo.ListAll()
	if err != nil {
		return 0, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return 0, err
	}
	headerRow := sheet.AddRow()
	for _, header := range productExportHeaders {
		headerRow.AddCell().SetString(header)
	}

	for _, product := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(product.ID))
		row.AddCell().SetString(product.Slug)
		row.AddCell().SetString(product.Name)
		row.AddCell().SetString(product.Brand)
		row.AddCell().SetString(product.Category)
		row.AddCell().SetString(product.Price.String())
		row.AddCell().SetInt(product.CountInStock)
		row.AddCell().SetFloat(product.Rating)
		row.AddCell().SetInt(product.NumReviews)
		row.AddCell().SetBool(product.IsActive)
		row.AddCell().SetBool(product.IsFeatured)
		row.AddCell().SetString(strings.Join(product.Images, ","))
		row.AddCell().SetString(product.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(product.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	if err := file.Write(w); err != nil {
		return 0, err
	}
	return len(products), nil
}
