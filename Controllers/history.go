package Controllers

import (
	"fmt"
	"log"
	"net/http"

	"DocTools/Models"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/gin-gonic/gin"
)

// FetchNotificationHistory lists the delivery log, newest first.
func FetchNotificationHistory(c *gin.Context) {
	var records []Models.NotificationRecord

	if err := Models.DB.Model(&Models.NotificationRecord{}).
		Order("displayed_at DESC").
		Limit(500).
		Find(&records).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "success", "data": records})
}

func ExportDeliveryReport(c *gin.Context) {
	var input struct {
		DateFrom string `json:"date_from"`
		DateTo   string `json:"date_to"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, err)
		return
	}

	var records []Models.NotificationRecord

	if input.DateFrom != "" && input.DateTo != "" {
		if err := Models.DB.Model(&Models.NotificationRecord{}).
			Where("displayed_at BETWEEN ? AND ?", input.DateFrom, input.DateTo).
			Find(&records).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	} else {
		if err := Models.DB.Model(&Models.NotificationRecord{}).Find(&records).Error; err != nil {
			c.JSON(http.StatusBadRequest, err)
			return
		}
	}

	headers := map[string]string{
		"A1": "Displayed At",
		"B1": "Title",
		"C1": "Tag",
		"D1": "URL",
		"E1": "Clicked At",
		"F1": "Action",
	}

	file := excelize.NewFile()
	sheet := "Deliveries"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")
	for k, v := range headers {
		file.SetCellValue(sheet, k, v)
	}

	for i := 0; i < len(records); i++ {
		appendRowDelivery(sheet, file, i, records)
	}
	var filename string = fmt.Sprintf("./DeliveryReport.xlsx")
	if err := file.SaveAs(filename); err != nil {
		log.Println(err)
	}
	c.File(filename)
}

func appendRowDelivery(sheet string, file *excelize.File, index int, rows []Models.NotificationRecord) (fileWriter *excelize.File) {
	rowCount := index + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), rows[index].DisplayedAt.Format("2006-01-02 15:04"))
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), rows[index].Title)
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), rows[index].Tag)
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), rows[index].URL)
	if rows[index].ClickedAt != nil {
		file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), rows[index].ClickedAt.Format("2006-01-02 15:04"))
	}
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), rows[index].Action)
	return file

}
