package xlsexport

import (
	"bytes"

	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportJobList(list []dbmodels.DesignJob) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var jobHeaders = []string{"Номер", "Название", "Тип", "Приоритет", "Статус", "Автор", "Исполнитель", "Срок", "Дата создания"}

func (i impl) ExportJobList(list []dbmodels.DesignJob) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, jobHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(list) != 0 {
		row, err = writeJobData(f, sheet, list, row)
		if err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	f.SetSheetName(sheet, "Задания")
	return f.WriteToBuffer()
}

func writeJobData(f *excelize.File, sheet string, list []dbmodels.DesignJob, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(jobHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Номер"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Reference); err != nil {
			return row, err
		}

		// "Название"
		col++
		if err := writeColumn(f, sheet, col, row, item.Title); err != nil {
			return row, err
		}

		// "Тип"
		col++
		if item.JobType != nil {
			if err := writeColumn(f, sheet, col, row, item.JobType.Name); err != nil {
				return row, err
			}
		}

		// "Приоритет"
		col++
		if err := writeColumn(f, sheet, col, row, item.Priority.GetDesc()); err != nil {
			return row, err
		}

		// "Статус"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.GetDesc()); err != nil {
			return row, err
		}

		// "Автор"
		col++
		if item.Author != nil {
			if err := writeColumn(f, sheet, col, row, item.Author.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Исполнитель"
		col++
		if item.Assignee != nil {
			if err := writeColumn(f, sheet, col, row, item.Assignee.GetFullName()); err != nil {
				return row, err
			}
		}

		// "Срок"
		col++
		if item.DueDate != nil {
			if err := writeColumn(f, sheet, col, row, item.DueDate.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Дата создания"
		col++
		if err := writeColumn(f, sheet, col, row, item.CreatedAt.Format("02.01.2006")); err != nil {
			return row, err
		}
	}
	return row, nil
}
