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

package health

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// HostProvider implements MetricsProvider with gopsutil.
type HostProvider struct {
	// LoadFn returns the load averages (replaceable in tests).
	LoadFn func(ctx context.Context) (*load.AvgStat, error)
	// MemFn returns virtual memory usage (replaceable in tests).
	MemFn func(ctx context.Context) (*mem.VirtualMemoryStat, error)
}

// NewHostProvider factory to create a new instance.
func NewHostProvider() *HostProvider {
	return &HostProvider{
		LoadFn: load.AvgWithContext,
		MemFn:  mem.VirtualMemoryWithContext,
	}
}

// GetHostMetrics returns the current load averages and memory usage.
func (p *HostProvider) GetHostMetrics(
	ctx context.Context,
) (*HostMetrics, error) {
	avg, err := p.LoadFn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get load averages: %w", err)
	}

	vm, err := p.MemFn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get memory usage: %w", err)
	}

	return &HostMetrics{
		Load1:             avg.Load1,
		Load5:             avg.Load5,
		Load15:            avg.Load15,
		MemoryTotal:       vm.Total,
		MemoryUsedPercent: vm.UsedPercent,
	}, nil
}
