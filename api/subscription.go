package api

import "context"

// GetPlans fetches the purchasable membership plans
func (c *Client) GetPlans(ctx context.Context) ([]Plan, error) {
	var plans []Plan
	if err := c.get(ctx, "/subscription/plans", nil, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}
