package api

import (
	"context"

	"github.com/syncflow/dashboard/internal/model"
	"github.com/syncflow/dashboard/internal/poll"
)

// RosterFetch adapts Roster to a poll.FetchFunc.
func (c *Client) RosterFetch() poll.FetchFunc[model.Employee] {
	return func(ctx context.Context) poll.Result[model.Employee] {
		return poll.Classify(c.Roster(ctx))
	}
}

// IntruderLogsFetch adapts IntruderLogs to a poll.FetchFunc.
func (c *Client) IntruderLogsFetch() poll.FetchFunc[model.NetworkLog] {
	return func(ctx context.Context) poll.Result[model.NetworkLog] {
		return poll.Classify(c.IntruderLogs(ctx))
	}
}

// ManagersFetch adapts Managers to a poll.FetchFunc.
func (c *Client) ManagersFetch() poll.FetchFunc[model.Manager] {
	return func(ctx context.Context) poll.Result[model.Manager] {
		return poll.Classify(c.Managers(ctx))
	}
}

// CheckoutIPsFetch adapts CheckoutIPs to a poll.FetchFunc.
func (c *Client) CheckoutIPsFetch() poll.FetchFunc[string] {
	return func(ctx context.Context) poll.Result[string] {
		return poll.Classify(c.CheckoutIPs(ctx))
	}
}

// CheckoutLogsFetch polls the network logs of ip.
func (c *Client) CheckoutLogsFetch(ip string) poll.FetchFunc[model.NetworkLog] {
	return func(ctx context.Context) poll.Result[model.NetworkLog] {
		return poll.Classify(c.CheckoutLogs(ctx, ip))
	}
}

// PortsFetch polls the open ports of ip.
func (c *Client) PortsFetch(ip string) poll.FetchFunc[string] {
	return func(ctx context.Context) poll.Result[string] {
		return poll.Classify(c.Ports(ctx, ip))
	}
}

// PoliciesFetch polls the policies applied to ip.
func (c *Client) PoliciesFetch(ip string) poll.FetchFunc[model.Policy] {
	return func(ctx context.Context) poll.Result[model.Policy] {
		return poll.Classify(c.Policies(ctx, ip))
	}
}

// SysInfoFetch wraps the single sysinfo object in a one-element collection.
func (c *Client) SysInfoFetch() poll.FetchFunc[model.SysInfo] {
	return func(ctx context.Context) poll.Result[model.SysInfo] {
		info, err := c.SysInfo(ctx)
		if err != nil {
			return poll.Classify[model.SysInfo](nil, err)
		}
		return poll.Collection([]model.SysInfo{info})
	}
}
