package models

// ListFilter параметры выборки списков: подстрока поиска и страница.
// Нулевой Limit означает выдачу без ограничения.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
