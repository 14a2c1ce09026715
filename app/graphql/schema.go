// Package graphql exposes cells and the solver as a GraphQL schema:
//
//	query    { cell(id: Int!)  cells(page: Int, limit: Int)  solve(puzzle: String!) }
//	mutation { createCell(input_value: Int!) }
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/shashiranjanraj/sudoku/app/models"
	"github.com/shashiranjanraj/sudoku/app/repositories"
	"github.com/shashiranjanraj/sudoku/app/services"
	gql "github.com/shashiranjanraj/sudoku/pkg/graphql"
	"github.com/shashiranjanraj/sudoku/pkg/sudoku"
)

var cellType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cell",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"input_value": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var solutionType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Solution",
	Fields: graphql.Fields{
		"puzzle":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"solution": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"cached":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

func cellMap(c *models.Cell) map[string]interface{} {
	return map[string]interface{}{"id": int(c.ID), "input_value": c.InputValue}
}

// NewSchema wires the resolvers to cells and solver.
func NewSchema(cells repositories.CellRepository, solver *services.SolverService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"cell": &graphql.Field{
				Type: cellType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					if id < 1 {
						return nil, repositories.ErrCellNotFound
					}
					c, err := cells.FindByID(p.Context, uint(id))
					if err != nil {
						return nil, err
					}
					return cellMap(c), nil
				},
			},
			"cells": &graphql.Field{
				Type: graphql.NewList(cellType),
				Args: graphql.FieldConfigArgument{
					"page":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 15},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					page, _ := p.Args["page"].(int)
					limit, _ := p.Args["limit"].(int)
					list, _, err := cells.All(p.Context, page, limit)
					if err != nil {
						return nil, err
					}
					out := make([]map[string]interface{}, len(list))
					for i := range list {
						out[i] = cellMap(&list[i])
					}
					return out, nil
				},
			},
			"solve": &graphql.Field{
				Type: solutionType,
				Args: graphql.FieldConfigArgument{
					"puzzle": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					puzzle, _ := p.Args["puzzle"].(string)
					g, err := sudoku.Parse(puzzle)
					if err != nil {
						return nil, err
					}
					sol, err := solver.Solve(p.Context, g)
					if err != nil {
						return nil, err
					}
					return map[string]interface{}{
						"puzzle":   sol.Puzzle.String(),
						"solution": sol.Solution.String(),
						"cached":   sol.Cached,
					}, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCell": &graphql.Field{
				Type: cellType,
				Args: graphql.FieldConfigArgument{
					"input_value": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					c, err := cells.Create(p.Context, p.Args["input_value"])
					if err != nil {
						return nil, err
					}
					return cellMap(c), nil
				},
			},
		},
	})

	return gql.NewSchema(query, mutation)
}
