// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

package query

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/UnivaCorporation/tortuga/internal/helper"
)

// GetProvisioningNICs lists the provisioning NICs of the installer, or of a
// hardware profile when hardware_profile is set.
func (q *Query) GetProvisioningNICs(
	c echo.Context,
) error {
	var req helper.NICQuery
	err := echo.QueryParamsBinder(c).
		String("hardware_profile", &req.HardwareProfile).
		BindError()
	if err != nil {
		return q.badRequest(c, err)
	}

	nics, err := q.helper.NICs(c.Request().Context(), req)
	if err != nil {
		return q.failure(c, err)
	}

	return c.JSON(http.StatusOK, ProvisioningNICsResponse{
		HardwareProfile: req.HardwareProfile,
		NICs:            nics,
	})
}
