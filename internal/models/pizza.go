package models

// Pizza represents a pizza on the menu
type Pizza struct {
	ID          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (Pizza) TableName() string {
	return "pizzas"
}
