package psqlbuilder

import "github.com/Masterminds/squirrel"

// Билдеры squirrel с предустановленными $-плейсхолдерами для PostgreSQL

var builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select создает SELECT билдер
func Select(columns ...string) squirrel.SelectBuilder {
	return builder.Select(columns...)
}

// Insert создает INSERT билдер
func Insert(table string) squirrel.InsertBuilder {
	return builder.Insert(table)
}

// Update создает UPDATE билдер
func Update(table string) squirrel.UpdateBuilder {
	return builder.Update(table)
}

// Delete создает DELETE билдер
func Delete(table string) squirrel.DeleteBuilder {
	return builder.Delete(table)
}
