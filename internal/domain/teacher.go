package domain

// Teacher учитель из справочника
// ID - стабильный ключ, имя и кабинет нужны только для отображения
type Teacher struct {
	ID   string
	Name string
	Room string
}
