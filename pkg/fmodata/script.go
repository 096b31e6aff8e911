// Copyright (c) 2024 FMProKit Contributors
// SPDX-License-Identifier: MIT

package fmodata

import (
	"context"

	"github.com/adrixdax/FMProKit2/internal/constants"
	"github.com/adrixdax/FMProKit2/internal/models"
	"github.com/adrixdax/FMProKit2/internal/odata"
	"github.com/adrixdax/FMProKit2/internal/validate"
)

// RunScript runs the FileMaker script name. param, when not nil, is passed as the
// script parameter.
func (c *Client) RunScript(ctx context.Context, name string, param any) (ScriptResult, error) {
	if err := validate.Script(name); err != nil {
		return ScriptResult{}, err
	}
	var body any
	if param != nil {
		body = models.ScriptCall[any]{ScriptParameterValue: param}
	}
	res, err := send[models.Scripter](ctx, c, constants.POST, odata.Script(name), body)
	if err != nil {
		return ScriptResult{}, err
	}
	return res.ScriptResult, nil
}
